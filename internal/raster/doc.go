// Package raster is a minimal 2D software painter operating
// directly on a writable ARGB8888 byte slice. All colors are premultiplied
// before being written to the buffer; drawing operations other than Clear
// composite them source-over.
package raster
