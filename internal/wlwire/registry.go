package wlwire

const (
	opDisplayGetRegistry uint16 = 1

	opRegistryBind uint16 = 0

	evRegistryGlobal       uint16 = 0
	evRegistryGlobalRemove uint16 = 1

	evDisplayError    uint16 = 0
	evDisplayDeleteID uint16 = 1
)

// Global describes one name advertised by wl_registry.global.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Registry collects the compositor's advertised globals during the initial
// roundtrip; Find looks one up by interface name for the caller to bind.
type Registry struct {
	conn     *Conn
	objectID uint32
	globals  []Global
}

// GetRegistry issues wl_display.get_registry and registers a handler that
// accumulates every wl_registry.global event until the caller stops
// listening (typically after one protocol roundtrip via Sync).
func GetRegistry(conn *Conn) (*Registry, error) {
	id := conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	if err := conn.Send(DisplayObjectID, opDisplayGetRegistry, e); err != nil {
		return nil, err
	}

	r := &Registry{conn: conn, objectID: id}
	conn.Register(id, r.dispatch)
	return r, nil
}

func (r *Registry) dispatch(opcode uint16, d *decoder, _ []int) error {
	switch opcode {
	case evRegistryGlobal:
		name, err := d.uint32()
		if err != nil {
			return err
		}
		iface, err := d.string()
		if err != nil {
			return err
		}
		version, err := d.uint32()
		if err != nil {
			return err
		}
		r.globals = append(r.globals, Global{Name: name, Interface: iface, Version: version})
	case evRegistryGlobalRemove:
		name, err := d.uint32()
		if err != nil {
			return err
		}
		for i, g := range r.globals {
			if g.Name == name {
				r.globals = append(r.globals[:i], r.globals[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Globals returns the globals observed so far.
func (r *Registry) Globals() []Global { return r.globals }

// Find returns the first global advertising the given interface name.
func (r *Registry) Find(iface string) (Global, bool) {
	for _, g := range r.globals {
		if g.Interface == iface {
			return g, true
		}
	}
	return Global{}, false
}

// Bind issues wl_registry.bind for global g, returning the freshly
// allocated client-side object id for the bound interface.
func (r *Registry) Bind(g Global) (uint32, error) {
	id := r.conn.NewID()
	e := newEncoder()
	e.putUint32(g.Name)
	e.putString(g.Interface)
	e.putUint32(g.Version)
	e.putNewID(id)
	if err := r.conn.Send(r.objectID, opRegistryBind, e); err != nil {
		return 0, err
	}
	return id, nil
}

// Sync issues wl_display.sync and blocks until the compositor's
// corresponding wl_callback.done event arrives, giving the caller a
// roundtrip barrier (used after get_registry to collect the initial
// global advertisements, and anywhere else the protocol needs one).
func Sync(conn *Conn) error {
	id := conn.NewID()
	done := make(chan struct{}, 1)

	conn.Register(id, func(opcode uint16, _ *decoder, _ []int) error {
		if opcode == 0 { // wl_callback.done
			select {
			case done <- struct{}{}:
			default:
			}
		}
		return nil
	})
	defer conn.Unregister(id)

	e := newEncoder()
	e.putNewID(id)
	if err := conn.Send(DisplayObjectID, 0, e); err != nil {
		return err
	}

	for {
		select {
		case <-done:
			return nil
		default:
		}
		if err := conn.dispatchOneBlocking(); err != nil {
			return err
		}
	}
}
