package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/widget"
)

func item(index, preferred, min int, expand bool) Item {
	return Item{Index: index, Info: widget.Info{PreferredHeight: preferred, MinHeight: min, Expand: expand}}
}

func TestStack_RectanglesAreNonOverlappingAndWithinInterior(t *testing.T) {
	items := []Item{
		item(0, 40, 20, false),
		item(1, 60, 20, false),
		item(2, 30, 10, false),
	}
	rects := Stack(items, 10, 10, 200, 300, 5)
	require.Len(t, rects, 3)

	for _, r := range rects {
		require.GreaterOrEqual(t, r.X, 10)
		require.GreaterOrEqual(t, r.Y, 10)
		require.LessOrEqual(t, r.Y+r.Height, 10+300)
		require.LessOrEqual(t, r.X+r.Width, 10+200)
	}
	for i := 1; i < len(rects); i++ {
		require.GreaterOrEqual(t, rects[i].Y, rects[i-1].Y+rects[i-1].Height)
	}
}

func TestStack_ExpandWidgetTakesSlack(t *testing.T) {
	items := []Item{
		item(0, 40, 20, false),
		item(1, 20, 10, true),
	}
	rects := Stack(items, 0, 0, 100, 200, 0)
	require.Len(t, rects, 2)
	require.Greater(t, rects[1].Height, 20)
}

func TestStack_NoExpandDiscardsSlackAtBottom(t *testing.T) {
	items := []Item{item(0, 40, 20, false)}
	rects := Stack(items, 0, 0, 100, 200, 0)
	require.Len(t, rects, 1)
	require.Equal(t, 40, rects[0].Height)
}

func TestStack_DropsWidgetsThatDontFit(t *testing.T) {
	items := []Item{
		item(0, 100, 50, false),
		item(1, 100, 50, false),
		item(2, 100, 50, false),
	}
	rects := Stack(items, 0, 0, 100, 150, 0)
	require.Less(t, len(rects), 3)
}

func TestStack_ZeroInteriorProducesNoRects(t *testing.T) {
	items := []Item{item(0, 40, 20, false)}
	require.Empty(t, Stack(items, 0, 0, 0, 0, 0))
}
