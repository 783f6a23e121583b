package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/theme"
)

func newTestCanvas(w, h int) *Canvas {
	stride := w * 4
	return NewCanvas(make([]byte, stride*h), w, h, stride)
}

func TestClear_FillsOpaqueColor(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(0xFF112233)

	off := c.offset(1, 1)
	require.Equal(t, byte(0x33), c.Pixels[off+0]) // B
	require.Equal(t, byte(0x22), c.Pixels[off+1]) // G
	require.Equal(t, byte(0x11), c.Pixels[off+2]) // R
	require.Equal(t, byte(0xFF), c.Pixels[off+3]) // A
}

func TestFillRect_ClipsToBounds(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(0x00000000)
	c.FillRect(-2, -2, 4, 4, 0xFFFFFFFF)

	// Only the bottom-right quadrant of the requested rect is on-canvas.
	off := c.offset(1, 1)
	require.Equal(t, byte(0xFF), c.Pixels[off+3])
	off = c.offset(2, 2)
	require.Equal(t, byte(0x00), c.Pixels[off+3])
}

func TestFillRect_SourceOverPreservesBackground(t *testing.T) {
	c := newTestCanvas(2, 1)
	c.Clear(0xFF000000) // opaque black
	c.FillRect(0, 0, 2, 1, theme.Color(0x80FFFFFF))

	off := c.offset(0, 0)
	// Half-alpha white over opaque black should brighten but not reach white.
	require.Greater(t, c.Pixels[off+0], byte(0))
	require.Less(t, c.Pixels[off+0], byte(255))
}

func TestStrokeRect_DrawsFourEdges(t *testing.T) {
	c := newTestCanvas(6, 6)
	c.Clear(0x00000000)
	c.StrokeRect(0, 0, 6, 6, 1, 0xFFFFFFFF)

	require.Equal(t, byte(0xFF), c.Pixels[c.offset(0, 0)+3])
	require.Equal(t, byte(0xFF), c.Pixels[c.offset(5, 5)+3])
	require.Equal(t, byte(0x00), c.Pixels[c.offset(2, 2)+3])
}

func TestFillRoundedRect_CenterFullyOpaque(t *testing.T) {
	c := newTestCanvas(20, 20)
	c.Clear(0x00000000)
	c.FillRoundedRect(0, 0, 20, 20, 6, 0xFFFFFFFF)

	off := c.offset(10, 10)
	require.Equal(t, byte(0xFF), c.Pixels[off+3])
}

func TestFillRoundedRect_CornerIsTransparent(t *testing.T) {
	c := newTestCanvas(20, 20)
	c.Clear(0x00000000)
	c.FillRoundedRect(0, 0, 20, 20, 6, 0xFFFFFFFF)

	off := c.offset(0, 0)
	require.Equal(t, byte(0x00), c.Pixels[off+3])
}

func TestBlitGlyph_ZeroCoverageLeavesBackground(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(0xFF102030)
	bitmap := []byte{0, 0, 0, 0}
	c.BlitGlyph(bitmap, 2, 2, 0, 0, 0xFFFFFFFF)

	off := c.offset(0, 0)
	require.Equal(t, byte(0x30), c.Pixels[off+0])
}

func TestBlitGlyph_FullCoverageWritesColor(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(0xFF000000)
	bitmap := []byte{255, 255, 255, 255}
	c.BlitGlyph(bitmap, 2, 2, 0, 0, 0xFFFFFFFF)

	off := c.offset(0, 0)
	require.Equal(t, byte(0xFF), c.Pixels[off+0])
}

func TestIdempotence_SameInputsProduceByteIdenticalOutput(t *testing.T) {
	render := func() []byte {
		c := newTestCanvas(10, 10)
		c.Clear(0xFF202020)
		c.FillRoundedRect(0, 0, 10, 10, 3, 0xFF303030)
		c.StrokeRect(0, 0, 10, 10, 1, theme.Color(0xFFFFFFFF))
		return c.Pixels
	}
	require.Equal(t, render(), render())
}
