package wlwire

// Interface name constants, as advertised in wl_registry.global.
const (
	InterfaceCompositor = "wl_compositor"
	InterfaceShm        = "wl_shm"
	InterfaceLayerShell = "zwlr_layer_shell_v1"
)

// Anchor bits for zwlr_layer_surface_v1.set_anchor.
const (
	AnchorTop    uint32 = 1
	AnchorBottom uint32 = 2
	AnchorLeft   uint32 = 4
	AnchorRight  uint32 = 8
)

// Layer values for zwlr_layer_shell_v1.get_layer_surface.
const (
	LayerBackground uint32 = 0
	LayerBottom     uint32 = 1
	LayerTop        uint32 = 2
	LayerOverlay    uint32 = 3
)

// KeyboardInteractivityNone disables keyboard focus for the layer surface;
// the panel is pointer-only.
const KeyboardInteractivityNone uint32 = 0

const (
	opSurfaceDestroy uint16 = 0
	opSurfaceAttach  uint16 = 1
	opSurfaceDamage  uint16 = 2
	opSurfaceCommit  uint16 = 6
)

// Compositor wraps a bound wl_compositor.
type Compositor struct {
	conn     *Conn
	objectID uint32
}

// BindCompositor binds the wl_compositor global.
func BindCompositor(conn *Conn, registry *Registry) (*Compositor, error) {
	g, ok := registry.Find(InterfaceCompositor)
	if !ok {
		return nil, errMissingGlobal(InterfaceCompositor)
	}
	id, err := registry.Bind(g)
	if err != nil {
		return nil, err
	}
	return &Compositor{conn: conn, objectID: id}, nil
}

const opCompositorCreateSurface uint16 = 0

// CreateSurface issues wl_compositor.create_surface.
func (c *Compositor) CreateSurface() (*Surface, error) {
	id := c.conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	if err := c.conn.Send(c.objectID, opCompositorCreateSurface, e); err != nil {
		return nil, err
	}
	s := &Surface{conn: c.conn, objectID: id}
	c.conn.Register(id, s.dispatch)
	return s, nil
}

// Surface wraps a bound wl_surface.
type Surface struct {
	conn     *Conn
	objectID uint32
}

func (s *Surface) ObjectID() uint32 { return s.objectID }

func (s *Surface) dispatch(_ uint16, _ *decoder, _ []int) error { return nil }

// Attach issues wl_surface.attach.
func (s *Surface) Attach(buffer *Buffer, x, y int32) error {
	e := newEncoder()
	if buffer == nil {
		e.putUint32(0)
	} else {
		e.putUint32(buffer.objectID)
	}
	e.putInt32(x)
	e.putInt32(y)
	return s.conn.Send(s.objectID, opSurfaceAttach, e)
}

// Damage issues wl_surface.damage covering the given rectangle. This
// implementation always submits full-buffer damage; partial damage would
// need per-widget dirty tracking and a damage-union step.
func (s *Surface) Damage(x, y, w, h int32) error {
	e := newEncoder()
	e.putInt32(x)
	e.putInt32(y)
	e.putInt32(w)
	e.putInt32(h)
	return s.conn.Send(s.objectID, opSurfaceDamage, e)
}

// Commit issues wl_surface.commit.
func (s *Surface) Commit() error {
	return s.conn.Send(s.objectID, opSurfaceCommit, newEncoder())
}

// Destroy issues wl_surface.destroy and unregisters its dispatch handler.
func (s *Surface) Destroy() error {
	s.conn.Unregister(s.objectID)
	return s.conn.Send(s.objectID, opSurfaceDestroy, newEncoder())
}

const (
	opShmCreatePool uint16 = 0
	evShmFormat     uint16 = 0
)

// Shm wraps a bound wl_shm.
type Shm struct {
	conn     *Conn
	objectID uint32
	formats  []uint32
}

// BindShm binds the wl_shm global.
func BindShm(conn *Conn, registry *Registry) (*Shm, error) {
	g, ok := registry.Find(InterfaceShm)
	if !ok {
		return nil, errMissingGlobal(InterfaceShm)
	}
	id, err := registry.Bind(g)
	if err != nil {
		return nil, err
	}
	shm := &Shm{conn: conn, objectID: id}
	conn.Register(id, shm.dispatch)
	return shm, nil
}

func (s *Shm) dispatch(opcode uint16, d *decoder, _ []int) error {
	if opcode == evShmFormat {
		format, err := d.uint32()
		if err != nil {
			return err
		}
		s.formats = append(s.formats, format)
	}
	return nil
}

// CreatePool issues wl_shm.create_pool over fd, sized bytes.
func (s *Shm) CreatePool(fd int, size int32) (*ShmPool, error) {
	id := s.conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	e.putFD(fd)
	e.putInt32(size)
	if err := s.conn.Send(s.objectID, opShmCreatePool, e); err != nil {
		return nil, err
	}
	return &ShmPool{conn: s.conn, objectID: id}, nil
}

const (
	opPoolCreateBuffer uint16 = 0
	opPoolDestroy      uint16 = 1
	opPoolResize       uint16 = 2
)

// FormatARGB8888 is the pixel format used throughout this daemon.
const FormatARGB8888 uint32 = 0

// ShmPool wraps a bound wl_shm_pool.
type ShmPool struct {
	conn     *Conn
	objectID uint32
}

// CreateBuffer issues wl_shm_pool.create_buffer for a sub-region of the pool.
func (p *ShmPool) CreateBuffer(offset, width, height, stride int32, format uint32) (*Buffer, error) {
	id := p.conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	e.putInt32(offset)
	e.putInt32(width)
	e.putInt32(height)
	e.putInt32(stride)
	e.putUint32(format)
	if err := p.conn.Send(p.objectID, opPoolCreateBuffer, e); err != nil {
		return nil, err
	}
	b := &Buffer{conn: p.conn, objectID: id}
	p.conn.Register(id, b.dispatch)
	return b, nil
}

// Resize issues wl_shm_pool.resize.
func (p *ShmPool) Resize(size int32) error {
	e := newEncoder()
	e.putInt32(size)
	return p.conn.Send(p.objectID, opPoolResize, e)
}

// Destroy issues wl_shm_pool.destroy.
func (p *ShmPool) Destroy() error {
	return p.conn.Send(p.objectID, opPoolDestroy, newEncoder())
}

const (
	opBufferDestroy uint16 = 0
	evBufferRelease uint16 = 0
)

// Buffer wraps a bound wl_buffer.
type Buffer struct {
	conn      *Conn
	objectID  uint32
	OnRelease func()
}

func (b *Buffer) dispatch(opcode uint16, _ *decoder, _ []int) error {
	if opcode == evBufferRelease && b.OnRelease != nil {
		b.OnRelease()
	}
	return nil
}

// Destroy issues wl_buffer.destroy.
func (b *Buffer) Destroy() error {
	b.conn.Unregister(b.objectID)
	return b.conn.Send(b.objectID, opBufferDestroy, newEncoder())
}

const opLayerShellGetLayerSurface uint16 = 0

// LayerShell wraps a bound zwlr_layer_shell_v1.
type LayerShell struct {
	conn     *Conn
	objectID uint32
}

// BindLayerShell binds the zwlr_layer_shell_v1 global. Its absence is a
// fatal startup condition: without layer-shell there is nowhere to put
// the panel.
func BindLayerShell(conn *Conn, registry *Registry) (*LayerShell, error) {
	g, ok := registry.Find(InterfaceLayerShell)
	if !ok {
		return nil, errMissingGlobal(InterfaceLayerShell)
	}
	id, err := registry.Bind(g)
	if err != nil {
		return nil, err
	}
	return &LayerShell{conn: conn, objectID: id}, nil
}

// GetLayerSurface issues get_layer_surface, requesting no specific output
// so the compositor places the surface on its default output.
func (ls *LayerShell) GetLayerSurface(surface *Surface, layer uint32, namespace string) (*LayerSurface, error) {
	id := ls.conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	e.putUint32(surface.objectID)
	e.putUint32(0) // output: none specified
	e.putUint32(layer)
	e.putString(namespace)
	if err := ls.conn.Send(ls.objectID, opLayerShellGetLayerSurface, e); err != nil {
		return nil, err
	}
	lsurf := &LayerSurface{conn: ls.conn, objectID: id}
	ls.conn.Register(id, lsurf.dispatch)
	return lsurf, nil
}

const (
	opLayerSurfaceSetSize                 uint16 = 0
	opLayerSurfaceSetAnchor               uint16 = 1
	opLayerSurfaceSetExclusiveZone        uint16 = 2
	opLayerSurfaceSetMargin               uint16 = 3
	opLayerSurfaceSetKeyboardInteractivity uint16 = 4
	opLayerSurfaceAckConfigure            uint16 = 6
	opLayerSurfaceDestroy                 uint16 = 7

	evLayerSurfaceConfigure uint16 = 0
	evLayerSurfaceClosed    uint16 = 1
)

// ConfigureEvent is delivered on zwlr_layer_surface_v1.configure.
type ConfigureEvent struct {
	Serial uint32
	Width  uint32
	Height uint32
}

// LayerSurface wraps a bound zwlr_layer_surface_v1.
type LayerSurface struct {
	conn     *Conn
	objectID uint32

	OnConfigure func(ConfigureEvent)
	OnClosed    func()
}

func (l *LayerSurface) dispatch(opcode uint16, d *decoder, _ []int) error {
	switch opcode {
	case evLayerSurfaceConfigure:
		serial, err := d.uint32()
		if err != nil {
			return err
		}
		width, err := d.uint32()
		if err != nil {
			return err
		}
		height, err := d.uint32()
		if err != nil {
			return err
		}
		if l.OnConfigure != nil {
			l.OnConfigure(ConfigureEvent{Serial: serial, Width: width, Height: height})
		}
	case evLayerSurfaceClosed:
		if l.OnClosed != nil {
			l.OnClosed()
		}
	}
	return nil
}

func (l *LayerSurface) SetSize(w, h uint32) error {
	e := newEncoder()
	e.putUint32(w)
	e.putUint32(h)
	return l.conn.Send(l.objectID, opLayerSurfaceSetSize, e)
}

func (l *LayerSurface) SetAnchor(anchor uint32) error {
	e := newEncoder()
	e.putUint32(anchor)
	return l.conn.Send(l.objectID, opLayerSurfaceSetAnchor, e)
}

func (l *LayerSurface) SetExclusiveZone(zone int32) error {
	e := newEncoder()
	e.putInt32(zone)
	return l.conn.Send(l.objectID, opLayerSurfaceSetExclusiveZone, e)
}

func (l *LayerSurface) SetMargin(top, right, bottom, left int32) error {
	e := newEncoder()
	e.putInt32(top)
	e.putInt32(right)
	e.putInt32(bottom)
	e.putInt32(left)
	return l.conn.Send(l.objectID, opLayerSurfaceSetMargin, e)
}

func (l *LayerSurface) SetKeyboardInteractivity(mode uint32) error {
	e := newEncoder()
	e.putUint32(mode)
	return l.conn.Send(l.objectID, opLayerSurfaceSetKeyboardInteractivity, e)
}

func (l *LayerSurface) AckConfigure(serial uint32) error {
	e := newEncoder()
	e.putUint32(serial)
	return l.conn.Send(l.objectID, opLayerSurfaceAckConfigure, e)
}

func (l *LayerSurface) Destroy() error {
	l.conn.Unregister(l.objectID)
	return l.conn.Send(l.objectID, opLayerSurfaceDestroy, newEncoder())
}

type missingGlobalError struct{ iface string }

func (e *missingGlobalError) Error() string {
	return "wlwire: compositor does not advertise " + e.iface
}

func errMissingGlobal(iface string) error { return &missingGlobalError{iface: iface} }
