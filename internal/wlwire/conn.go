package wlwire

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// dispatchFunc handles one decoded event addressed to an object.
type dispatchFunc func(opcode uint16, d *decoder, fds []int) error

// Conn is a single connection to the compositor's Wayland socket. It owns
// object-id allocation (an atomic counter) and the dispatch-by-object-id
// table.
type Conn struct {
	logger *slog.Logger

	fd int

	nextID  atomic.Uint32
	mu      sync.Mutex
	objects map[uint32]dispatchFunc

	closed atomic.Bool
}

// DisplayObjectID is the wl_display object, always id 1 on a fresh connection.
const DisplayObjectID uint32 = 1

// Dial connects to the compositor named by WAYLAND_DISPLAY (or the default
// "wayland-0") under XDG_RUNTIME_DIR.
func Dial(logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, fmt.Errorf("wlwire: XDG_RUNTIME_DIR is not set")
	}
	name := os.Getenv("WAYLAND_DISPLAY")
	if name == "" {
		name = "wayland-0"
	}
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(runtimeDir, name)
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("wlwire: socket: %w", err)
	}

	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("wlwire: connect %s: %w", path, err)
	}

	c := &Conn{
		logger:  logger,
		fd:      fd,
		objects: make(map[uint32]dispatchFunc),
	}
	c.nextID.Store(DisplayObjectID) // 1 is reserved for wl_display; NewID hands out 2 next
	return c, nil
}

// NewID allocates a fresh client-side object id.
func (c *Conn) NewID() uint32 {
	return c.nextID.Add(1)
}

// Register installs the event handler for objectID, replacing any prior
// registration for that id.
func (c *Conn) Register(objectID uint32, fn dispatchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[objectID] = fn
}

// Unregister removes the handler for objectID (called on object destroy).
func (c *Conn) Unregister(objectID uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, objectID)
}

// Send frames and writes one request.
func (c *Conn) Send(objectID uint32, opcode uint16, e *encoder) error {
	return sendMessage(c.fd, objectID, opcode, e)
}

// FD exposes the underlying socket descriptor.
func (c *Conn) FD() int { return c.fd }

// Readable reports whether the socket has at least one byte ready, using a
// zero-timeout poll; DispatchAll checks it before each read so a pass never
// blocks on protocol I/O.
func (c *Conn) Readable() (bool, error) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// WaitReadable blocks until the socket is readable or the deadline elapses,
// returning whether it became readable.
func (c *Conn) WaitReadable(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	ms := int(timeout / time.Millisecond)
	if timeout < 0 {
		ms = -1
	}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// DispatchAll processes every currently queued event without blocking.
func (c *Conn) DispatchAll() error {
	for {
		readable, err := c.Readable()
		if err != nil {
			return err
		}
		if !readable {
			return nil
		}
		if err := c.dispatchOne(); err != nil {
			return err
		}
	}
}

// dispatchOneBlocking reads and dispatches exactly one event, blocking
// until one is available. Used by Sync's roundtrip wait.
func (c *Conn) dispatchOneBlocking() error {
	return c.dispatchOne()
}

func (c *Conn) dispatchOne() error {
	objectID, opcode, body, fds, err := recvMessage(c.fd)
	if err != nil {
		c.closed.Store(true)
		return fmt.Errorf("wlwire: protocol connection lost: %w", err)
	}

	c.mu.Lock()
	handler, ok := c.objects[objectID]
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("wlwire: event for unknown object", "object_id", objectID, "opcode", opcode)
		return nil
	}

	return handler(opcode, newDecoder(body), fds)
}

// Closed reports whether the connection has observed a read failure.
func (c *Conn) Closed() bool { return c.closed.Load() }

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return unix.Close(c.fd)
}
