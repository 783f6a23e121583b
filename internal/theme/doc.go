// Package theme defines the panel's color palette and the built-in themes
// enumerated by the configuration file format.
package theme
