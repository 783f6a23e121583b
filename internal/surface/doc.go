// Package surface is the layer-shell surface controller: the
// state machine that binds the compositor globals, negotiates a layer
// surface, owns its buffer pool, and decides whether a config reload can
// be applied in place or requires destroying and rebuilding the surface.
package surface
