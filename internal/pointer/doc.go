// Package pointer is the pointer router: it hit-tests
// pointer events against the current layout, dispatches click/scroll and
// hover enter/leave to the widget underneath, and returns whatever Action
// the widget produced.
package pointer
