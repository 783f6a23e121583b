// Package loop is the event loop and scheduler: a single-threaded
// cooperative pass that drives Wayland protocol dispatch, fires widget
// ticks on their own cadence, coalesces config reloads, and performs one
// render+commit per dirty pass.
package loop
