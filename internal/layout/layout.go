package layout

import "github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"

// Item is one widget's static info paired with its ordinal index, the unit
// the layout engine consumes.
type Item struct {
	Index int
	Info  widget.Info
}

// Rect is one widget's placement in surface coordinates.
type Rect struct {
	Index  int
	X      int
	Y      int
	Width  int
	Height int
}

// Stack computes a vertical-stack layout over the padded interior
// (interiorX, interiorY, interiorWidth, interiorHeight), separated by
// spacing pixels. Widgets with Expand=true share slack remaining after
// non-expanding widgets take their PreferredHeight; if none expand, slack
// is discarded at the bottom. Widgets that don't fit are dropped from the
// result and rendered as if their content were Empty.
func Stack(items []Item, interiorX, interiorY, interiorWidth, interiorHeight int, spacing float64) []Rect {
	if interiorWidth <= 0 || interiorHeight <= 0 || len(items) == 0 {
		return nil
	}

	gap := int(spacing + 0.5)

	baseHeight := 0
	expandCount := 0
	for i, item := range items {
		baseHeight += item.Info.PreferredHeight
		if i > 0 {
			baseHeight += gap
		}
		if item.Info.Expand {
			expandCount++
		}
	}

	slack := interiorHeight - baseHeight
	extraPerExpand := 0
	if expandCount > 0 && slack > 0 {
		extraPerExpand = slack / expandCount
	}

	var rects []Rect
	y := interiorY
	remaining := interiorHeight

	for i, item := range items {
		if i > 0 {
			if remaining < gap {
				break
			}
			y += gap
			remaining -= gap
		}

		height := item.Info.PreferredHeight
		if item.Info.Expand {
			height += extraPerExpand
		}
		if height > remaining {
			height = remaining
		}
		if height < item.Info.MinHeight && remaining < item.Info.MinHeight {
			// Not enough room even for the minimum: drop this and every
			// widget after it (they'd be forced below the interior).
			break
		}
		if height <= 0 {
			break
		}

		rects = append(rects, Rect{
			Index:  item.Index,
			X:      interiorX,
			Y:      y,
			Width:  interiorWidth,
			Height: height,
		})

		y += height
		remaining -= height
	}

	return rects
}
