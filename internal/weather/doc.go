// Package weather is an HTTP client that resolves a city/units/api-key
// request to a weather snapshot. Every fetch runs on its own goroutine
// with the result delivered on a channel, keeping networked work out of
// the render loop.
package weather
