// Package launch fires off OpenUrl and RunCommand actions produced by the
// pointer router as detached OS processes, never blocking the event loop
// on their exit.
package launch
