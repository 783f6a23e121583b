package pointer

import (
	"log/slog"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/layout"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
)

// Router maintains hover state and dispatches pointer events to the
// interactive widget underneath the pointer.
type Router struct {
	logger *slog.Logger

	rects   []layout.Rect
	widgets map[int]widget.Widget

	entered bool
	x, y    float64
	hovered *int
}

// New creates an empty router.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

// SetFrame installs the layout and widget set the router hit-tests
// against. The event loop calls it after each successfully committed
// frame, so pointer events are hit-tested against what is on screen; an
// event is always delivered to the widget set it was hit-tested on.
func (r *Router) SetFrame(rects []layout.Rect, widgets map[int]widget.Widget) {
	r.rects = rects
	r.widgets = widgets
}

func (r *Router) hitTest(x, y float64) (int, layout.Rect, bool) {
	for _, rect := range r.rects {
		w, ok := r.widgets[rect.Index]
		if !ok || !w.IsInteractive() {
			continue
		}
		if x >= float64(rect.X) && x < float64(rect.X+rect.Width) &&
			y >= float64(rect.Y) && y < float64(rect.Y+rect.Height) {
			return rect.Index, rect, true
		}
	}
	return 0, layout.Rect{}, false
}

func normalize(x, y float64, rect layout.Rect) (nx, ny float64) {
	nx = (x - float64(rect.X)) / float64(rect.Width)
	ny = (y - float64(rect.Y)) / float64(rect.Height)
	return clamp01(nx), clamp01(ny)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Motion updates the tracked pointer position and fires exactly one
// leave/enter pair whenever the hovered widget changes.
func (r *Router) Motion(x, y float64) {
	r.entered = true
	r.x, r.y = x, y

	index, _, hit := r.hitTest(x, y)

	if r.hovered != nil && (!hit || *r.hovered != index) {
		if w, ok := r.widgets[*r.hovered]; ok {
			w.OnPointerLeave()
		}
		r.hovered = nil
	}
	if hit && r.hovered == nil {
		if w, ok := r.widgets[index]; ok {
			w.OnPointerEnter()
			r.hovered = &index
		}
	}
}

// Leave clears hover state entirely, e.g. on wl_pointer.leave.
func (r *Router) Leave() {
	if r.hovered != nil {
		if w, ok := r.widgets[*r.hovered]; ok {
			w.OnPointerLeave()
		}
	}
	r.hovered = nil
	r.entered = false
}

// Button dispatches a press at the last tracked position to the
// hit-tested widget, if any and interactive.
func (r *Router) Button(button int) widget.Action {
	if !r.entered {
		return widget.NoAction
	}
	index, rect, hit := r.hitTest(r.x, r.y)
	if !hit {
		return widget.NoAction
	}
	w, ok := r.widgets[index]
	if !ok {
		return widget.NoAction
	}
	nx, ny := normalize(r.x, r.y, rect)
	return w.OnClick(button, nx, ny)
}

// Scroll dispatches a scroll event, reducing axisValue to a direction by
// sign only; the magnitude is ignored.
func (r *Router) Scroll(axisValue float64) widget.Action {
	if !r.entered {
		return widget.NoAction
	}
	index, rect, hit := r.hitTest(r.x, r.y)
	if !hit {
		return widget.NoAction
	}
	w, ok := r.widgets[index]
	if !ok {
		return widget.NoAction
	}

	dir := widget.ScrollUp
	if axisValue > 0 {
		dir = widget.ScrollDown
	}

	nx, ny := normalize(r.x, r.y, rect)
	return w.OnScroll(dir, nx, ny)
}
