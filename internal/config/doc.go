// Package config is the ConfigSource collaborator: it parses and validates
// the panel's TOML configuration file and applies the documented defaults.
package config
