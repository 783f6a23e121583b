package textshape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/glyphatlas"
)

type fakeSource struct {
	advance int
	ascent  int
	fail    map[rune]bool
}

func (f fakeSource) Get(ch rune, size float64) (glyphatlas.GlyphEntry, error) {
	if f.fail[ch] {
		return glyphatlas.GlyphEntry{}, errFake
	}
	return glyphatlas.GlyphEntry{Advance: f.advance, Width: f.advance, Height: int(size)}, nil
}

func (f fakeSource) Ascent(size float64) int { return f.ascent }

type fakeErr struct{}

func (fakeErr) Error() string { return "fake rasterization failure" }

var errFake = fakeErr{}

func TestShape_AdvancesPenByGlyphAdvance(t *testing.T) {
	src := fakeSource{advance: 10, ascent: 12}
	result := Shape(src, "abc", 16, 0, 0)

	require.Len(t, result.Placements, 3)
	require.Equal(t, 0, result.Placements[0].PenX)
	require.Equal(t, 10, result.Placements[1].PenX)
	require.Equal(t, 20, result.Placements[2].PenX)
	require.Equal(t, 30, result.Width)
}

func TestShape_BaselineIsYPlusAscent(t *testing.T) {
	src := fakeSource{advance: 10, ascent: 14}
	result := Shape(src, "a", 16, 5, 100)

	require.Equal(t, 114, result.Placements[0].BaselineY)
}

func TestShape_SkipsRunesThatFailToRasterize(t *testing.T) {
	src := fakeSource{advance: 10, ascent: 12, fail: map[rune]bool{'b': true}}
	result := Shape(src, "abc", 16, 0, 0)

	require.Len(t, result.Placements, 2)
}

func TestLinePitch_IsOneQuarterLarger(t *testing.T) {
	require.Equal(t, 20, LinePitch(16))
	require.Equal(t, 30, LinePitch(24))
}
