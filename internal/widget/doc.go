// Package widget implements the widget registry and instances: a closed
// set of widget kinds addressed by a string type tag, each producing a
// static Info descriptor and a per-tick Content snapshot.
package widget
