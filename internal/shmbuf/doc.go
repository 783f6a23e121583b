// Package shmbuf is the pixel buffer pool: it owns a
// POSIX shared-memory region backing a small number of ARGB8888 slots of
// the current panel geometry (two up front, more only while the compositor
// holds every existing slot), and hands out at most one mutable borrow at
// a time.
package shmbuf
