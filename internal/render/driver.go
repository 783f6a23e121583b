package render

import (
	"log/slog"
	"time"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/layout"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/raster"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/textshape"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/theme"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
)

const textInset = 6

// FrameStats is a snapshot of render activity: frames drawn, the last
// frame's duration, and render calls skipped because nothing was dirty.
type FrameStats struct {
	Count        int
	LastDuration time.Duration
	DirtyMisses  int
}

// BufferSlot is the writable target of one render pass. *shmbuf.Slot
// satisfies this.
type BufferSlot interface {
	Data() []byte
}

// BufferPool is the subset of the shmbuf.Pool contract the render driver
// needs; kept as an interface so tests can substitute an in-memory pool.
type BufferPool interface {
	Acquire(w, h int) (BufferSlot, error)
	Stride() int
}

// GlyphSource is the subset of glyphatlas.Atlas the text shaper and render
// driver need.
type GlyphSource interface {
	textshape.Source
}

// Driver owns the single dirty flag and turns a layout + widget
// content snapshot into pixels each time it is asked to render.
type Driver struct {
	logger *slog.Logger
	pool   BufferPool
	atlas  GlyphSource

	dirty bool
	stats FrameStats
}

// New creates a render driver over pool and atlas.
func New(pool BufferPool, atlas GlyphSource, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{logger: logger, pool: pool, atlas: atlas}
}

// SetDirty marks the front buffer as stale.
func (d *Driver) SetDirty() { d.dirty = true }

// IsDirty reports whether a render is owed.
func (d *Driver) IsDirty() bool { return d.dirty }

// ClearDirty is called by the event loop after the surface controller
// reports a successful commit.
func (d *Driver) ClearDirty() { d.dirty = false }

// Stats returns the current frame counters.
func (d *Driver) Stats() FrameStats { return d.stats }

// Input bundles everything one render pass needs.
type Input struct {
	Width, Height     int
	Theme             theme.Theme
	BackgroundOpacity *float64
	Padding           float64
	Rects             []layout.Rect
	Contents          map[int]widget.Content
	Icons             map[int]rune
}

// Render performs one full pass: if the dirty flag is unset it does
// nothing and returns (nil, nil). Otherwise it acquires a slot from the
// pool, draws into it, and returns the slot for the surface controller to
// attach and commit. The dirty flag is cleared only by the caller once the
// commit has actually happened (ClearDirty), so a failed commit leaves the
// buffer owed.
func (d *Driver) Render(in Input) (BufferSlot, error) {
	if !d.dirty {
		d.stats.DirtyMisses++
		return nil, nil
	}

	start := time.Now()

	slot, err := d.pool.Acquire(in.Width, in.Height)
	if err != nil {
		return nil, err
	}

	canvas := raster.NewCanvas(slot.Data(), in.Width, in.Height, d.pool.Stride())
	canvas.Clear(theme.Color(0))

	opacity := in.Theme.Opacity
	if in.BackgroundOpacity != nil {
		opacity = *in.BackgroundOpacity
	}

	bg := in.Theme.Background.WithAlpha(opacity)
	radius := int(in.Theme.CornerRadius + 0.5)
	canvas.FillRoundedRect(0, 0, in.Width, in.Height, radius, bg)
	if in.Theme.BorderWidth > 0 {
		canvas.StrokeRect(0, 0, in.Width, in.Height, int(in.Theme.BorderWidth+0.5), in.Theme.Border)
	}

	pad := int(in.Padding + 0.5)
	for _, rect := range in.Rects {
		content, ok := in.Contents[rect.Index]
		if !ok {
			continue
		}
		d.renderContent(canvas, in.Theme, rect, content, in.Icons[rect.Index], pad)
	}

	d.stats.Count++
	d.stats.LastDuration = time.Since(start)
	d.logger.Debug("render pass complete", "frame", d.stats.Count, "duration", d.stats.LastDuration)

	return slot, nil
}

func (d *Driver) renderContent(canvas *raster.Canvas, th theme.Theme, rect layout.Rect, content widget.Content, icon rune, pad int) {
	switch content.Kind {
	case widget.KindEmpty:
		return
	case widget.KindText:
		color := th.TextSecondary
		if content.TextSize == widget.Large {
			color = th.TextPrimary
		}
		x := rect.X + pad
		x += d.drawIcon(canvas, icon, content.TextSize, x, rect.Y, rect.Height, color)
		d.drawLine(canvas, content.Text, content.TextSize, x, rect.Y, rect.Height, color)
	case widget.KindMultiLine:
		y := rect.Y
		for i, line := range content.Lines {
			color := th.TextSecondary
			if line.Size == widget.Large {
				color = th.TextPrimary
			}
			pitch := textshape.LinePitch(line.Size.Pixels())
			x := rect.X + pad
			if i == 0 {
				x += d.drawIcon(canvas, icon, line.Size, x, y, pitch, color)
			}
			d.drawLine(canvas, line.Text, line.Size, x, y, pitch, color)
			y += pitch
		}
	case widget.KindProgress:
		trough := rect.Y + rect.Height/2 - 4
		canvas.FillRoundedRect(rect.X+pad, trough, rect.Width-2*pad, 8, 4, th.TextSecondary)
		fillWidth := int(float64(rect.Width-2*pad) * content.Value)
		if fillWidth > 0 {
			canvas.FillRoundedRect(rect.X+pad, trough, fillWidth, 8, 4, th.Accent)
		}
		if content.Label != "" {
			d.drawLine(canvas, content.Label, widget.Small, rect.X+pad, rect.Y, rect.Height, th.TextPrimary)
		}
	}
}

// drawIcon blits the widget's icon glyph at the line's left edge and
// returns the horizontal advance it consumed, zero when there is no icon.
// Icons come out of the same atlas as text, so the shaping math is
// identical to a one-rune line.
func (d *Driver) drawIcon(canvas *raster.Canvas, icon rune, size widget.SizeClass, x, y, bandHeight int, color theme.Color) int {
	if icon == 0 {
		return 0
	}
	pixels := size.Pixels()
	entry, err := d.atlas.Get(icon, pixels)
	if err != nil {
		return 0
	}

	ascent := d.atlas.Ascent(pixels)
	top := y + (bandHeight-ascent)/2
	if top < y {
		top = y
	}
	baseline := top + ascent

	if entry.Width > 0 && entry.Height > 0 {
		canvas.BlitGlyph(entry.Bitmap, entry.Width, entry.Height, x+textInset+entry.BearingX, baseline+entry.BearingY, color)
	}
	return entry.Advance
}

// drawLine shapes text at size and vertically centers it within a band of
// the given height starting at y, left-aligned with a small inset.
func (d *Driver) drawLine(canvas *raster.Canvas, text string, size widget.SizeClass, x, y, bandHeight int, color theme.Color) {
	pixels := size.Pixels()
	ascent := d.atlas.Ascent(pixels)
	textHeight := ascent
	top := y + (bandHeight-textHeight)/2
	if top < y {
		top = y
	}

	result := textshape.Shape(d.atlas, text, pixels, x+textInset, top)
	for _, p := range result.Placements {
		if p.Glyph.Width == 0 || p.Glyph.Height == 0 {
			continue
		}
		gx := p.PenX + p.Glyph.BearingX
		gy := p.BaselineY + p.Glyph.BearingY
		canvas.BlitGlyph(p.Glyph.Bitmap, p.Glyph.Width, p.Glyph.Height, gx, gy, color)
	}
}
