package textshape

import (
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/glyphatlas"
)

// Placement is one positioned glyph reference within a shaped line.
type Placement struct {
	Glyph     glyphatlas.GlyphEntry
	PenX      int
	BaselineY int
}

// Result is the output of shaping a single string.
type Result struct {
	Placements []Placement
	Width      int
}

// Source is the glyph provider a shaper draws from; satisfied by
// *glyphatlas.Atlas.
type Source interface {
	Get(ch rune, size float64) (glyphatlas.GlyphEntry, error)
	Ascent(size float64) int
}

// Shape lays out s left-to-right starting at (x, y), treating y as the
// top of the line. Runes whose rasterization fails (e.g. a missing font)
// are skipped and do not advance the pen.
func Shape(source Source, s string, size float64, x, y int) Result {
	ascent := source.Ascent(size)
	baseline := y + ascent

	pen := x
	placements := make([]Placement, 0, len(s))
	for _, ch := range s {
		entry, err := source.Get(ch, size)
		if err != nil {
			continue
		}
		placements = append(placements, Placement{
			Glyph:     entry,
			PenX:      pen,
			BaselineY: baseline,
		})
		pen += entry.Advance
	}

	return Result{Placements: placements, Width: pen - x}
}

// LinePitch returns the baseline-to-baseline distance for stacked lines at
// the given size, 1.25x the nominal glyph size.
func LinePitch(size float64) int {
	return int(size*1.25 + 0.5)
}
