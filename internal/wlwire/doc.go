// Package wlwire is a minimal, hand-written client for the Wayland wire
// protocol: enough of wl_display, wl_registry, wl_compositor, wl_shm, and
// zwlr_layer_shell_v1 to bind the globals, create a layer surface, and
// attach shared-memory buffers. It does not depend on any Wayland client
// library; object framing, the UNIX socket transport, and SCM_RIGHTS file
// descriptor passing are implemented directly on golang.org/x/sys/unix.
package wlwire
