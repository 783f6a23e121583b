package raster

import (
	"math"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/theme"
)

// Canvas is a writable ARGB8888 byte slice of the given geometry. Byte
// order within each pixel is B, G, R, A (little-endian ARGB8888). Every
// write is premultiplied; all drawing operations except Clear composite
// source-over, while Clear overwrites.
type Canvas struct {
	Pixels []byte
	Width  int
	Height int
	Stride int
}

// NewCanvas wraps pixels (expected length stride*height) as a Canvas.
func NewCanvas(pixels []byte, width, height, stride int) *Canvas {
	return &Canvas{Pixels: pixels, Width: width, Height: height, Stride: stride}
}

func premultiply(a, r, g, b uint8) (pr, pg, pb, pa uint8) {
	af := float64(a) / 255
	return uint8(float64(r) * af), uint8(float64(g) * af), uint8(float64(b) * af), a
}

// compositePixel performs source-over of (a,r,g,b) (straight alpha) onto
// the pixel at byte offset off.
func (c *Canvas) compositePixel(off int, a, r, g, b uint8) {
	if off < 0 || off+4 > len(c.Pixels) {
		return
	}
	sr, sg, sb, sa := premultiply(a, r, g, b)
	if sa == 255 {
		c.Pixels[off+0] = sb
		c.Pixels[off+1] = sg
		c.Pixels[off+2] = sr
		c.Pixels[off+3] = sa
		return
	}
	if sa == 0 {
		return
	}
	dstB := c.Pixels[off+0]
	dstG := c.Pixels[off+1]
	dstR := c.Pixels[off+2]
	dstA := c.Pixels[off+3]

	inv := 255 - uint16(sa)
	outB := uint8((uint16(sb)*255 + uint16(dstB)*inv) / 255)
	outG := uint8((uint16(sg)*255 + uint16(dstG)*inv) / 255)
	outR := uint8((uint16(sr)*255 + uint16(dstR)*inv) / 255)
	outA := uint8((uint16(sa)*255 + uint16(dstA)*inv) / 255)

	c.Pixels[off+0] = outB
	c.Pixels[off+1] = outG
	c.Pixels[off+2] = outR
	c.Pixels[off+3] = outA
}

func (c *Canvas) offset(x, y int) int {
	return y*c.Stride + x*4
}

// Clear fills every pixel with argb, overwriting rather than compositing.
func (c *Canvas) Clear(argb theme.Color) {
	a, r, g, b := argb.RGBA()
	sr, sg, sb, sa := premultiply(a, r, g, b)
	for y := 0; y < c.Height; y++ {
		row := y * c.Stride
		for x := 0; x < c.Width; x++ {
			off := row + x*4
			c.Pixels[off+0] = sb
			c.Pixels[off+1] = sg
			c.Pixels[off+2] = sr
			c.Pixels[off+3] = sa
		}
	}
}

// FillRect fills the rectangle [x,y,x+w,y+h), clipped to canvas bounds.
func (c *Canvas) FillRect(x, y, w, h int, argb theme.Color) {
	a, r, g, b := argb.RGBA()
	x0, y0, x1, y1 := clipRect(x, y, w, h, c.Width, c.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.compositePixel(c.offset(px, py), a, r, g, b)
		}
	}
}

// StrokeRect draws a rectangle outline of the given thickness.
func (c *Canvas) StrokeRect(x, y, w, h, thickness int, argb theme.Color) {
	if thickness <= 0 {
		return
	}
	c.FillRect(x, y, w, thickness, argb)
	c.FillRect(x, y+h-thickness, w, thickness, argb)
	c.FillRect(x, y, thickness, h, argb)
	c.FillRect(x+w-thickness, y, thickness, h, argb)
}

// FillRoundedRect fills a rectangle with corners rounded to radius,
// antialiased at the corner boundary by coverage-weighted compositing.
func (c *Canvas) FillRoundedRect(x, y, w, h, radius int, argb theme.Color) {
	a, r, g, b := argb.RGBA()
	if radius <= 0 {
		c.FillRect(x, y, w, h, argb)
		return
	}
	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}

	x0, y0, x1, y1 := clipRect(x, y, w, h, c.Width, c.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			coverage := roundedCoverage(px-x, py-y, w, h, radius)
			if coverage <= 0 {
				continue
			}
			ca := uint8(float64(a) * coverage)
			c.compositePixel(c.offset(px, py), ca, r, g, b)
		}
	}
}

// roundedCoverage returns 1.0 inside the rounded rect, 0.0 outside, and a
// fractional antialiasing value within one pixel of a corner arc.
func roundedCoverage(lx, ly, w, h, radius int) float64 {
	// Outside the four corner boxes entirely: full coverage.
	inCornerBoxX := lx < radius || lx >= w-radius
	inCornerBoxY := ly < radius || ly >= h-radius
	if !inCornerBoxX || !inCornerBoxY {
		return 1.0
	}

	cx := radius
	if lx >= w-radius {
		cx = w - radius - 1
	}
	cy := radius
	if ly >= h-radius {
		cy = h - radius - 1
	}

	dx := float64(lx - cx)
	dy := float64(ly - cy)
	dist := dx*dx + dy*dy
	r := float64(radius)

	if dist <= (r-0.5)*(r-0.5) {
		return 1.0
	}
	if dist >= (r+0.5)*(r+0.5) {
		return 0.0
	}
	// Linear falloff across the one-pixel antialiasing band.
	return r + 0.5 - math.Sqrt(dist)
}

// BlitGlyph composites a grayscale coverage bitmap at (x,y), treating each
// byte as the alpha multiplier against argb, source-over.
func (c *Canvas) BlitGlyph(bitmap []byte, w, h, x, y int, argb theme.Color) {
	if w <= 0 || h <= 0 || len(bitmap) == 0 {
		return
	}
	a, r, g, b := argb.RGBA()
	for gy := 0; gy < h; gy++ {
		py := y + gy
		if py < 0 || py >= c.Height {
			continue
		}
		for gx := 0; gx < w; gx++ {
			px := x + gx
			if px < 0 || px >= c.Width {
				continue
			}
			coverage := bitmap[gy*w+gx]
			if coverage == 0 {
				continue
			}
			ca := uint8(uint16(a) * uint16(coverage) / 255)
			c.compositePixel(c.offset(px, py), ca, r, g, b)
		}
	}
}

func clipRect(x, y, w, h, maxW, maxH int) (x0, y0, x1, y1 int) {
	x0, y0 = x, y
	x1, y1 = x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > maxW {
		x1 = maxW
	}
	if y1 > maxH {
		y1 = maxH
	}
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}
