// Package watch is the FileWatcher collaborator: it delivers a coalesced
// signal on every observed change to the configuration file.
package watch
