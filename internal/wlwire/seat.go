package wlwire

// InterfaceSeat names the wl_seat global. Unlike the compositor/shm/
// layer-shell trio, its absence is not fatal: a compositor with no pointer
// device simply leaves the panel non-interactive.
const InterfaceSeat = "wl_seat"

const (
	opSeatGetPointer   uint16 = 0
	evSeatCapabilities uint16 = 0
)

const capabilityPointer uint32 = 1

// Seat wraps a bound wl_seat.
type Seat struct {
	conn         *Conn
	objectID     uint32
	hasPointer   bool
	OnPointerCap func(bool)
}

// BindSeat binds the wl_seat global, if advertised.
func BindSeat(conn *Conn, registry *Registry) (*Seat, error) {
	g, ok := registry.Find(InterfaceSeat)
	if !ok {
		return nil, errMissingGlobal(InterfaceSeat)
	}
	id, err := registry.Bind(g)
	if err != nil {
		return nil, err
	}
	seat := &Seat{conn: conn, objectID: id}
	conn.Register(id, seat.dispatch)
	return seat, nil
}

func (s *Seat) dispatch(opcode uint16, d *decoder, _ []int) error {
	if opcode == evSeatCapabilities {
		caps, err := d.uint32()
		if err != nil {
			return err
		}
		s.hasPointer = caps&capabilityPointer != 0
		if s.OnPointerCap != nil {
			s.OnPointerCap(s.hasPointer)
		}
	}
	return nil
}

// HasPointer reports whether the seat most recently advertised a pointer
// capability.
func (s *Seat) HasPointer() bool { return s.hasPointer }

// GetPointer issues wl_seat.get_pointer.
func (s *Seat) GetPointer() (*Pointer, error) {
	id := s.conn.NewID()
	e := newEncoder()
	e.putNewID(id)
	if err := s.conn.Send(s.objectID, opSeatGetPointer, e); err != nil {
		return nil, err
	}
	p := &Pointer{conn: s.conn, objectID: id}
	s.conn.Register(id, p.dispatch)
	return p, nil
}

const (
	evPointerEnter  uint16 = 0
	evPointerLeave  uint16 = 1
	evPointerMotion uint16 = 2
	evPointerButton uint16 = 3
	evPointerAxis   uint16 = 4
)

const (
	// ButtonStatePressed is the value wl_pointer.button sends on press;
	// release events are not forwarded to the pointer router, which only
	// reacts to presses.
	ButtonStatePressed uint32 = 1

	// AxisVertical is the only scroll axis the router reduces to a
	// direction; horizontal scroll is not consumed by any widget.
	AxisVertical uint32 = 0
)

// Pointer wraps a bound wl_pointer and surfaces its events through plain
// callback fields, mirroring how LayerSurface exposes OnConfigure/OnClosed.
type Pointer struct {
	conn     *Conn
	objectID uint32

	OnEnter  func(surfaceX, surfaceY float64)
	OnLeave  func()
	OnMotion func(surfaceX, surfaceY float64)
	OnButton func(button uint32, pressed bool)
	OnAxis   func(axis uint32, value float64)
}

func (p *Pointer) dispatch(opcode uint16, d *decoder, _ []int) error {
	switch opcode {
	case evPointerEnter:
		if _, err := d.uint32(); err != nil { // serial
			return err
		}
		if _, err := d.uint32(); err != nil { // surface
			return err
		}
		x, err := d.fixed()
		if err != nil {
			return err
		}
		y, err := d.fixed()
		if err != nil {
			return err
		}
		if p.OnEnter != nil {
			p.OnEnter(x, y)
		}
	case evPointerLeave:
		if p.OnLeave != nil {
			p.OnLeave()
		}
	case evPointerMotion:
		if _, err := d.uint32(); err != nil { // time
			return err
		}
		x, err := d.fixed()
		if err != nil {
			return err
		}
		y, err := d.fixed()
		if err != nil {
			return err
		}
		if p.OnMotion != nil {
			p.OnMotion(x, y)
		}
	case evPointerButton:
		if _, err := d.uint32(); err != nil { // serial
			return err
		}
		if _, err := d.uint32(); err != nil { // time
			return err
		}
		button, err := d.uint32()
		if err != nil {
			return err
		}
		state, err := d.uint32()
		if err != nil {
			return err
		}
		if p.OnButton != nil {
			p.OnButton(button, state == ButtonStatePressed)
		}
	case evPointerAxis:
		if _, err := d.uint32(); err != nil { // time
			return err
		}
		axis, err := d.uint32()
		if err != nil {
			return err
		}
		value, err := d.fixed()
		if err != nil {
			return err
		}
		if p.OnAxis != nil {
			p.OnAxis(axis, value)
		}
	}
	return nil
}
