package widget

import (
	"fmt"
	"log/slog"
)

// Factory builds a widget instance from its opaque per-widget config table.
type Factory func(cfg map[string]any, logger *slog.Logger) (Widget, error)

var factories = map[string]Factory{
	"clock":          newClock,
	"weather":        newWeather,
	"system_monitor": newSystemMonitor,
	"countdown":      newCountdown,
	"quotes":         newQuotes,
}

// RegisteredTypes returns the accepted `type` tag values, for error
// messages and config validation.
func RegisteredTypes() []string {
	return []string{"clock", "weather", "system_monitor", "countdown", "quotes"}
}

// New instantiates the widget registered under tag, returning a validation
// error naming the offending field on failure.
func New(tag string, cfg map[string]any, logger *slog.Logger) (Widget, error) {
	factory, ok := factories[tag]
	if !ok {
		return nil, fmt.Errorf("widget: unknown type %q, must be one of %v", tag, RegisteredTypes())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return factory(cfg, logger)
}

func stringField(cfg map[string]any, key, def string) (string, bool) {
	v, ok := cfg[key]
	if !ok {
		return def, true
	}
	s, ok := v.(string)
	return s, ok
}

func boolField(cfg map[string]any, key string, def bool) (bool, bool) {
	v, ok := cfg[key]
	if !ok {
		return def, true
	}
	b, ok := v.(bool)
	return b, ok
}

func intField(cfg map[string]any, key string, def int) (int, bool) {
	v, ok := cfg[key]
	if !ok {
		return def, true
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return def, false
	}
}

func oneOf(value string, options ...string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}
