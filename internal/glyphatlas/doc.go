// Package glyphatlas rasterizes and caches per-(char,size) grayscale
// coverage bitmaps. The cache is single-threaded: callers
// must only use an Atlas from the render loop goroutine.
package glyphatlas
