package pointer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/layout"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
)

type fakeWidget struct {
	widget.BaseWidget
	interactive bool

	entered, left int
	clicks        []int
	scrolls       []widget.ScrollDirection
	lastNX, lastNY float64
}

func (w *fakeWidget) Info() widget.Info            { return widget.Info{ID: "fake"} }
func (w *fakeWidget) Tick()                        {}
func (w *fakeWidget) Content() widget.Content      { return widget.Empty() }
func (w *fakeWidget) UpdateInterval() time.Duration { return time.Second }
func (w *fakeWidget) IsInteractive() bool          { return w.interactive }

func (w *fakeWidget) OnPointerEnter() { w.entered++ }
func (w *fakeWidget) OnPointerLeave() { w.left++ }

func (w *fakeWidget) OnClick(button int, nx, ny float64) widget.Action {
	w.clicks = append(w.clicks, button)
	w.lastNX, w.lastNY = nx, ny
	return widget.Action{Kind: widget.ActionNextItem}
}

func (w *fakeWidget) OnScroll(dir widget.ScrollDirection, nx, ny float64) widget.Action {
	w.scrolls = append(w.scrolls, dir)
	w.lastNX, w.lastNY = nx, ny
	return widget.Action{Kind: widget.ActionToggle}
}

func frame(interactive0, interactive1 bool) ([]layout.Rect, map[int]widget.Widget, *fakeWidget, *fakeWidget) {
	rects := []layout.Rect{
		{Index: 0, X: 0, Y: 0, Width: 100, Height: 50},
		{Index: 1, X: 0, Y: 50, Width: 100, Height: 50},
	}
	w0 := &fakeWidget{interactive: interactive0}
	w1 := &fakeWidget{interactive: interactive1}
	widgets := map[int]widget.Widget{0: w0, 1: w1}
	return rects, widgets, w0, w1
}

func TestMotion_EntersAndLeavesOnTransition(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, w1 := frame(true, true)
	r.SetFrame(rects, widgets)

	r.Motion(10, 10)
	require.Equal(t, 1, w0.entered)
	require.Equal(t, 0, w0.left)
	require.Equal(t, 0, w1.entered)

	r.Motion(10, 60)
	require.Equal(t, 1, w0.left)
	require.Equal(t, 1, w1.entered)

	r.Motion(20, 60)
	require.Equal(t, 1, w1.entered, "staying within the same widget fires no extra enter")
}

func TestMotion_LeavingAllRectsFiresLeaveOnce(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, _ := frame(true, true)
	r.SetFrame(rects, widgets)

	r.Motion(10, 10)
	r.Motion(1000, 1000)
	require.Equal(t, 1, w0.left)

	r.Motion(2000, 2000)
	require.Equal(t, 1, w0.left, "no widget hovered, no further leave fired")
}

func TestMotion_NonInteractiveWidgetNeverHovered(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, _ := frame(false, true)
	r.SetFrame(rects, widgets)

	r.Motion(10, 10)
	require.Equal(t, 0, w0.entered)
}

func TestButton_DispatchesToHoveredWidgetWithNormalizedCoords(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, _ := frame(true, true)
	r.SetFrame(rects, widgets)

	r.Motion(25, 25)
	action := r.Button(1)

	require.Equal(t, []int{1}, w0.clicks)
	require.InDelta(t, 0.25, w0.lastNX, 1e-9)
	require.InDelta(t, 0.5, w0.lastNY, 1e-9)
	require.Equal(t, widget.ActionNextItem, action.Kind)
}

func TestButton_NoHitProducesNoAction(t *testing.T) {
	r := New(nil)
	rects, widgets, _, _ := frame(true, true)
	r.SetFrame(rects, widgets)

	action := r.Button(1)
	require.Equal(t, widget.NoAction, action)
}

func TestScroll_PositiveAndNegativeReduceToDirectionIgnoringMagnitude(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, _ := frame(true, true)
	r.SetFrame(rects, widgets)
	r.Motion(10, 10)

	r.Scroll(0.001)
	r.Scroll(500)
	r.Scroll(-0.001)
	r.Scroll(-500)

	require.Equal(t, []widget.ScrollDirection{
		widget.ScrollDown, widget.ScrollDown, widget.ScrollUp, widget.ScrollUp,
	}, w0.scrolls)
}

func TestLeave_ClearsHoverAndFiresLeave(t *testing.T) {
	r := New(nil)
	rects, widgets, w0, _ := frame(true, true)
	r.SetFrame(rects, widgets)

	r.Motion(10, 10)
	r.Leave()
	require.Equal(t, 1, w0.left)
	require.Nil(t, r.hovered)
}
