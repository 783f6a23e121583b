package surface

import (
	"fmt"
	"log/slog"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/render"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/shmbuf"
	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

// Namespace is the fixed identifier this daemon advertises for its layer
// surface.
const Namespace = "cosmic-desktop-widget"

// MissingGlobalError is returned by New when the compositor does not
// advertise zwlr_layer_shell_v1, the one global the panel cannot run
// without.
type MissingGlobalError struct {
	Interface string
}

func (e *MissingGlobalError) Error() string {
	return fmt.Sprintf("surface: compositor does not advertise %s", e.Interface)
}

// Controller drives the layer surface through its lifecycle: bind the
// globals, configure/ack, attach and commit buffers, rebuild on a
// geometry reload, tear down on close.
type Controller struct {
	logger *slog.Logger

	conn       *wlwire.Conn
	compositor *wlwire.Compositor
	shm        *wlwire.Shm
	layerShell *wlwire.LayerShell

	wlSurface    *wlwire.Surface
	layerSurface *wlwire.LayerSurface
	pool         *shmbuf.Pool
	seat         *wlwire.Seat
	pointer      *wlwire.Pointer

	state State

	requestedW, requestedH int
	width, height          int
	position               config.Position
	margin                 config.MarginConfig
	lastSerial             uint32

	OnConfigured func()
	OnClosed     func()
}

// New connects to conn and binds wl_compositor, wl_shm, and
// zwlr_layer_shell_v1, performing the initial registry roundtrip.
func New(conn *wlwire.Conn, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := wlwire.GetRegistry(conn)
	if err != nil {
		return nil, fmt.Errorf("surface: get_registry: %w", err)
	}
	if err := wlwire.Sync(conn); err != nil {
		return nil, fmt.Errorf("surface: initial roundtrip: %w", err)
	}

	compositor, err := wlwire.BindCompositor(conn, registry)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	shm, err := wlwire.BindShm(conn, registry)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	layerShell, err := wlwire.BindLayerShell(conn, registry)
	if err != nil {
		return nil, &MissingGlobalError{Interface: wlwire.InterfaceLayerShell}
	}

	c := &Controller{
		logger:     logger,
		conn:       conn,
		compositor: compositor,
		shm:        shm,
		layerShell: layerShell,
		pool:       shmbuf.New(conn, shm, logger),
		state:      Unbound,
	}

	// Unlike layer-shell, a missing wl_seat is not fatal: the panel just
	// renders without pointer interaction.
	if seat, err := wlwire.BindSeat(conn, registry); err == nil {
		c.seat = seat
		if pointer, err := seat.GetPointer(); err == nil {
			c.pointer = pointer
		} else {
			c.logger.Warn("surface: get_pointer failed", "error", err)
		}
	} else {
		c.logger.Debug("surface: no wl_seat advertised, pointer interaction disabled")
	}

	return c, nil
}

// Pointer returns the bound wl_pointer, or nil if the compositor advertised
// no seat with pointer capability.
func (c *Controller) Pointer() *wlwire.Pointer { return c.pointer }

// Bind creates the base surface and layer surface for the given geometry,
// position, and margins, and commits with no buffer attached, prompting
// the compositor's first configure event.
func (c *Controller) Bind(width, height int, position config.Position, margin config.MarginConfig) error {
	surf, err := c.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("surface: create_surface: %w", err)
	}

	layerSurf, err := c.layerShell.GetLayerSurface(surf, wlwire.LayerBottom, Namespace)
	if err != nil {
		return fmt.Errorf("surface: get_layer_surface: %w", err)
	}

	c.wlSurface = surf
	c.layerSurface = layerSurf
	c.requestedW, c.requestedH = width, height
	c.position = position
	c.margin = margin

	layerSurf.OnConfigure = c.handleConfigure
	layerSurf.OnClosed = c.handleClosed

	if err := layerSurf.SetSize(uint32(width), uint32(height)); err != nil {
		return err
	}
	if err := layerSurf.SetAnchor(anchorFor(position)); err != nil {
		return err
	}
	if err := layerSurf.SetExclusiveZone(-1); err != nil {
		return err
	}
	if err := layerSurf.SetMargin(int32(margin.Top), int32(margin.Right), int32(margin.Bottom), int32(margin.Left)); err != nil {
		return err
	}
	if err := layerSurf.SetKeyboardInteractivity(wlwire.KeyboardInteractivityNone); err != nil {
		return err
	}
	if err := surf.Commit(); err != nil {
		return err
	}

	c.state = Bound
	return nil
}

func (c *Controller) handleConfigure(ev wlwire.ConfigureEvent) {
	c.lastSerial = ev.Serial
	if err := c.layerSurface.AckConfigure(ev.Serial); err != nil {
		c.logger.Warn("surface: ack_configure failed", "error", err)
	}

	width, height := int(ev.Width), int(ev.Height)
	if width == 0 {
		width = c.requestedW
	}
	if height == 0 {
		height = c.requestedH
	}

	geometryChanged := width != c.width || height != c.height
	c.width, c.height = width, height

	if geometryChanged && c.pool != nil {
		if err := c.pool.Resize(width, height); err != nil {
			c.logger.Warn("surface: pool resize failed", "error", err)
		}
	}

	c.state = Configured
	if c.OnConfigured != nil {
		c.OnConfigured()
	}
}

func (c *Controller) handleClosed() {
	c.state = Closed
	if c.OnClosed != nil {
		c.OnClosed()
	}
	if err := c.teardown(); err != nil {
		c.logger.Warn("surface: teardown after close failed", "error", err)
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State { return c.state }

// Geometry returns the last acked width/height.
func (c *Controller) Geometry() (int, int) { return c.width, c.height }

// Pool exposes the buffer pool, adapted to render.BufferPool. The adapter
// resolves the live pool on every call: a rebuild reload replaces the
// underlying shmbuf.Pool, and the render driver must follow it.
func (c *Controller) Pool() render.BufferPool { return poolAdapter{c} }

// Commit attaches slot (returned by render.Driver.Render) at (0,0),
// submits full-buffer damage, and commits.
func (c *Controller) Commit(slot render.BufferSlot) error {
	if c.state != Configured {
		return fmt.Errorf("surface: cannot commit while %s", c.state)
	}
	adapted, ok := slot.(slotAdapter)
	if !ok {
		return fmt.Errorf("surface: commit called with a foreign buffer slot")
	}
	if err := c.wlSurface.Attach(adapted.slot.Buffer(), 0, 0); err != nil {
		return err
	}
	if err := c.wlSurface.Damage(0, 0, int32(c.width), int32(c.height)); err != nil {
		return err
	}
	if err := c.wlSurface.Commit(); err != nil {
		return err
	}
	c.pool.Committed(adapted.slot)
	return nil
}

// Reconfigure applies the in-place vs. rebuild decision from a config
// reload. In-place reloads are no-ops here; the caller (event loop)
// just marks the render driver dirty. Rebuild reloads destroy and recreate
// the layer surface, returning the controller to Bound.
func (c *Controller) Reconfigure(kind config.ReloadKind, width, height int, position config.Position, margin config.MarginConfig) error {
	if kind == config.ReloadInPlace {
		return nil
	}

	if err := c.teardown(); err != nil {
		return err
	}
	return c.Bind(width, height, position, margin)
}

// Close performs orderly shutdown: pool teardown, layer surface destroy,
// base surface destroy.
func (c *Controller) Close() error {
	c.state = Closed
	return c.teardown()
}

func (c *Controller) teardown() error {
	if c.pool != nil {
		if err := c.pool.Close(); err != nil {
			c.logger.Warn("surface: pool close failed", "error", err)
		}
	}
	if c.layerSurface != nil {
		if err := c.layerSurface.Destroy(); err != nil {
			c.logger.Warn("surface: layer surface destroy failed", "error", err)
		}
		c.layerSurface = nil
	}
	if c.wlSurface != nil {
		if err := c.wlSurface.Destroy(); err != nil {
			c.logger.Warn("surface: base surface destroy failed", "error", err)
		}
		c.wlSurface = nil
	}
	if c.state != Closed {
		c.state = Bound
		c.pool = shmbuf.New(c.conn, c.shm, c.logger)
	}
	return nil
}

type poolAdapter struct{ c *Controller }

func (p poolAdapter) Acquire(w, h int) (render.BufferSlot, error) {
	slot, err := p.c.pool.Acquire(w, h)
	if err != nil {
		return nil, err
	}
	return slotAdapter{slot: slot}, nil
}

func (p poolAdapter) Stride() int { return p.c.pool.Stride() }

type slotAdapter struct{ slot *shmbuf.Slot }

func (s slotAdapter) Data() []byte { return s.slot.Data() }
