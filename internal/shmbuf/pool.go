package shmbuf

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/wlwire"
)

// TargetSlotCount is the number of buffer slots the pool keeps warm for
// the current geometry: one for the compositor to scan out, one to draw
// the next frame into.
const TargetSlotCount = 2

// bytesPerPixel is fixed by the ARGB8888 format.
const bytesPerPixel = 4

// Slot is one shared-memory-backed buffer the render driver can draw into.
type Slot struct {
	index  int
	buffer *wlwire.Buffer
	data   []byte
	inUse  bool
}

// Data returns the writable byte range for this slot. Callers must not
// retain it past Release/the next Acquire of the same slot.
func (s *Slot) Data() []byte { return s.data }

// Buffer returns the wl_buffer object to attach to the surface.
func (s *Slot) Buffer() *wlwire.Buffer { return s.buffer }

// Pool manages a POSIX shared-memory region and the wl_shm_pool it backs.
// Only one slot may be mutably borrowed (Acquired and not yet Committed or
// Released) at a time; Acquire returns an error while a borrow is
// outstanding.
type Pool struct {
	logger *slog.Logger
	conn   *wlwire.Conn
	shm    *wlwire.Shm

	memfd    int
	mapped   []byte
	wlPool   *wlwire.ShmPool
	width    int
	height   int
	stride   int
	slots    []*Slot
	borrowed bool
}

// New creates an empty pool bound to shm; call Acquire to allocate slots
// for a geometry.
func New(conn *wlwire.Conn, shm *wlwire.Shm, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{conn: conn, shm: shm, logger: logger, memfd: -1}
}

func slotSize(width, height int) int {
	return width * bytesPerPixel * height
}

// Acquire returns a slot sized for (w,h). If the pool's geometry doesn't
// match, all existing slots are freed and a fresh generation is allocated.
// Allocation failures are returned as errors, never panics; the caller
// decides whether a failed frame is fatal.
func (p *Pool) Acquire(w, h int) (*Slot, error) {
	if p.borrowed {
		return nil, fmt.Errorf("shmbuf: a slot is already mutably borrowed")
	}
	if w != p.width || h != p.height {
		if err := p.rebuild(w, h); err != nil {
			return nil, err
		}
	}

	for _, s := range p.slots {
		if !s.inUse {
			s.inUse = true
			p.borrowed = true
			return s, nil
		}
	}

	slot, err := p.allocateSlot()
	if err != nil {
		return nil, err
	}
	slot.inUse = true
	p.borrowed = true
	return slot, nil
}

// Release returns handle to the free pool; called on wl_buffer.release or
// when the caller decides not to commit an acquired-but-unused slot.
func (p *Pool) Release(handle *Slot) {
	handle.inUse = false
	p.borrowed = false
}

// Committed ends the acquire-to-commit mutable borrow. The slot stays in
// use — the compositor owns its pixels until the wl_buffer.release event —
// but the client side may acquire another slot for the next frame.
func (p *Pool) Committed(handle *Slot) {
	p.borrowed = false
}

// Resize frees every slot and immediately allocates a fresh generation of
// slots at the new geometry.
func (p *Pool) Resize(newW, newH int) error {
	return p.rebuild(newW, newH)
}

// Close tears down the shared-memory region and every wl_buffer/wl_shm_pool
// object, used on surface destroy and full teardown.
func (p *Pool) Close() error {
	return p.freeAll()
}

func (p *Pool) rebuild(w, h int) error {
	if err := p.freeAll(); err != nil {
		return err
	}

	size := slotSize(w, h) * TargetSlotCount
	if size <= 0 {
		return fmt.Errorf("shmbuf: invalid geometry %dx%d", w, h)
	}

	fd, err := unix.MemfdCreate("cosmicwidgetd-shm", 0)
	if err != nil {
		return fmt.Errorf("shmbuf: memfd_create: %w", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return fmt.Errorf("shmbuf: ftruncate: %w", err)
	}

	mapped, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("shmbuf: mmap: %w", err)
	}

	wlPool, err := p.shm.CreatePool(fd, int32(size))
	if err != nil {
		unix.Munmap(mapped)
		unix.Close(fd)
		return fmt.Errorf("shmbuf: create_pool: %w", err)
	}

	p.memfd = fd
	p.mapped = mapped
	p.wlPool = wlPool
	p.width = w
	p.height = h
	p.stride = w * bytesPerPixel
	p.slots = nil

	for i := 0; i < TargetSlotCount; i++ {
		if _, err := p.allocateSlot(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) allocateSlot() (*Slot, error) {
	index := len(p.slots)
	offset := index * slotSize(p.width, p.height)
	if err := p.grow(index + 1); err != nil {
		return nil, err
	}
	buffer, err := p.wlPool.CreateBuffer(int32(offset), int32(p.width), int32(p.height), int32(p.stride), wlwire.FormatARGB8888)
	if err != nil {
		return nil, fmt.Errorf("shmbuf: create_buffer: %w", err)
	}

	slot := &Slot{
		index: index,
		data:  p.mapped[offset : offset+slotSize(p.width, p.height)],
	}
	buffer.OnRelease = func() {
		p.logger.Debug("shmbuf: buffer released by compositor", "slot", slot.index)
		p.Release(slot)
	}
	slot.buffer = buffer

	p.slots = append(p.slots, slot)
	return slot, nil
}

// grow extends the shared-memory region to hold at least slotCount slots,
// used when the compositor is still holding every warm slot and a frame is
// owed anyway.
// wl_shm_pool only grows, never shrinks, so this is a one-way ratchet until
// the next rebuild. The remap moves the client-side addresses; the pages
// themselves are untouched, so slots the compositor holds stay valid.
func (p *Pool) grow(slotCount int) error {
	size := slotSize(p.width, p.height) * slotCount
	if size <= len(p.mapped) {
		return nil
	}

	if err := unix.Ftruncate(p.memfd, int64(size)); err != nil {
		return fmt.Errorf("shmbuf: ftruncate to %d: %w", size, err)
	}
	if err := p.wlPool.Resize(int32(size)); err != nil {
		return fmt.Errorf("shmbuf: pool resize: %w", err)
	}

	if err := unix.Munmap(p.mapped); err != nil {
		return fmt.Errorf("shmbuf: munmap before remap: %w", err)
	}
	mapped, err := unix.Mmap(p.memfd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		p.mapped = nil
		return fmt.Errorf("shmbuf: remap: %w", err)
	}
	p.mapped = mapped

	single := slotSize(p.width, p.height)
	for i, s := range p.slots {
		s.data = p.mapped[i*single : (i+1)*single]
	}
	return nil
}

func (p *Pool) freeAll() error {
	for _, s := range p.slots {
		if s.buffer != nil {
			_ = s.buffer.Destroy()
		}
	}
	p.slots = nil

	if p.wlPool != nil {
		_ = p.wlPool.Destroy()
		p.wlPool = nil
	}
	if p.mapped != nil {
		if err := unix.Munmap(p.mapped); err != nil {
			return fmt.Errorf("shmbuf: munmap: %w", err)
		}
		p.mapped = nil
	}
	if p.memfd >= 0 {
		if err := unix.Close(p.memfd); err != nil {
			return fmt.Errorf("shmbuf: close memfd: %w", err)
		}
		p.memfd = -1
	}
	p.borrowed = false
	return nil
}

// Stride returns the current geometry's row stride in bytes.
func (p *Pool) Stride() int { return p.stride }
