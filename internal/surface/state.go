package surface

import (
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

// State is one point in the layer-shell lifecycle.
type State int

const (
	Unbound State = iota
	Bound
	Configured
	Closed
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Configured:
		return "configured"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// anchorFor maps a configured position to the wl anchor bitmask.
func anchorFor(pos config.Position) uint32 {
	switch pos {
	case config.PositionTopLeft:
		return anchorBit(true, false, true, false)
	case config.PositionTopCenter:
		return anchorBit(true, false, false, false)
	case config.PositionTopRight:
		return anchorBit(true, false, false, true)
	case config.PositionCenterLeft:
		return anchorBit(false, false, true, false)
	case config.PositionCenter:
		return 0
	case config.PositionCenterRight:
		return anchorBit(false, false, false, true)
	case config.PositionBottomLeft:
		return anchorBit(false, true, true, false)
	case config.PositionBottomCenter:
		return anchorBit(false, true, false, false)
	case config.PositionBottomRight:
		return anchorBit(false, true, false, true)
	default:
		return 0
	}
}

func anchorBit(top, bottom, left, right bool) uint32 {
	var bits uint32
	if top {
		bits |= wlwire.AnchorTop
	}
	if bottom {
		bits |= wlwire.AnchorBottom
	}
	if left {
		bits |= wlwire.AnchorLeft
	}
	if right {
		bits |= wlwire.AnchorRight
	}
	return bits
}
