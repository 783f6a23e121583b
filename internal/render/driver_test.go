package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/glyphatlas"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/layout"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/theme"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
)

type fakeSlot struct{ data []byte }

func (s *fakeSlot) Data() []byte { return s.data }

type fakePool struct {
	width, height int
	stride        int
}

func (p *fakePool) Acquire(w, h int) (BufferSlot, error) {
	p.width, p.height = w, h
	p.stride = w * 4
	return &fakeSlot{data: make([]byte, p.stride*h)}, nil
}

func (p *fakePool) Stride() int { return p.stride }

type fakeGlyphSource struct{}

func (fakeGlyphSource) Get(ch rune, size float64) (glyphatlas.GlyphEntry, error) {
	if ch == ' ' {
		return glyphatlas.GlyphEntry{Advance: int(size / 2)}, nil
	}
	return glyphatlas.GlyphEntry{
		Advance:  int(size / 2),
		Width:    int(size / 2),
		Height:   int(size),
		BearingY: -int(size),
		Bitmap:   makeBitmap(int(size/2), int(size)),
	}, nil
}

func (fakeGlyphSource) Ascent(size float64) int { return int(size) }

func makeBitmap(w, h int) []byte {
	b := make([]byte, w*h)
	for i := range b {
		b[i] = 200
	}
	return b
}

func testInput() Input {
	return Input{
		Width:   100,
		Height:  100,
		Theme:   theme.Default(),
		Padding: 4,
		Rects: []layout.Rect{
			{Index: 0, X: 0, Y: 0, Width: 100, Height: 40},
		},
		Contents: map[int]widget.Content{
			0: widget.Text("hi", widget.Large),
		},
	}
}

func TestRender_NotDirtyReturnsNil(t *testing.T) {
	d := New(&fakePool{}, fakeGlyphSource{}, nil)
	slot, err := d.Render(testInput())
	require.NoError(t, err)
	require.Nil(t, slot)
	require.Equal(t, 1, d.Stats().DirtyMisses)
}

func TestRender_DirtyProducesABuffer(t *testing.T) {
	d := New(&fakePool{}, fakeGlyphSource{}, nil)
	d.SetDirty()
	slot, err := d.Render(testInput())
	require.NoError(t, err)
	require.NotNil(t, slot)
	require.Equal(t, 1, d.Stats().Count)
}

func TestRender_IsIdempotent(t *testing.T) {
	render := func() []byte {
		d := New(&fakePool{}, fakeGlyphSource{}, nil)
		d.SetDirty()
		slot, err := d.Render(testInput())
		require.NoError(t, err)
		return slot.Data()
	}

	require.Equal(t, render(), render())
}

func TestRender_IconGlyphShiftsTextRight(t *testing.T) {
	render := func(icons map[int]rune) []byte {
		d := New(&fakePool{}, fakeGlyphSource{}, nil)
		d.SetDirty()
		in := testInput()
		in.Icons = icons
		slot, err := d.Render(in)
		require.NoError(t, err)
		return slot.Data()
	}

	plain := render(nil)
	withIcon := render(map[int]rune{0: glyphatlas.IconClock})
	require.NotEqual(t, plain, withIcon)

	// Without the icon "hi" covers columns 10..33; the 12px icon advance
	// moves it to 22..45, so column 40 (row 16) is inked only when shifted.
	off := 16*testInput().Width*4 + 40*4
	require.NotEqual(t, plain[off:off+4], withIcon[off:off+4])
}

func BenchmarkRenderDriver_Fill(b *testing.B) {
	d := New(&fakePool{}, fakeGlyphSource{}, nil)
	in := testInput()
	for i := 0; i < b.N; i++ {
		d.SetDirty()
		if _, err := d.Render(in); err != nil {
			b.Fatal(err)
		}
	}
}
