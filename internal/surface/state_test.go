package surface

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

func TestAnchorFor_MatchesTable(t *testing.T) {
	cases := map[config.Position]uint32{
		config.PositionTopLeft:      wlwire.AnchorTop | wlwire.AnchorLeft,
		config.PositionTopCenter:    wlwire.AnchorTop,
		config.PositionTopRight:     wlwire.AnchorTop | wlwire.AnchorRight,
		config.PositionCenterLeft:   wlwire.AnchorLeft,
		config.PositionCenter:       0,
		config.PositionCenterRight:  wlwire.AnchorRight,
		config.PositionBottomLeft:   wlwire.AnchorBottom | wlwire.AnchorLeft,
		config.PositionBottomCenter: wlwire.AnchorBottom,
		config.PositionBottomRight:  wlwire.AnchorBottom | wlwire.AnchorRight,
	}
	for pos, want := range cases {
		require.Equal(t, want, anchorFor(pos), "position %s", pos)
	}
}

func TestState_String(t *testing.T) {
	require.Equal(t, "unbound", Unbound.String())
	require.Equal(t, "bound", Bound.String())
	require.Equal(t, "configured", Configured.String())
	require.Equal(t, "closed", Closed.String())
}
