// Package render is the render driver: it combines a theme,
// a layout result, and widget content snapshots into pixels drawn onto a
// buffer pool slot via the software rasterizer.
package render
