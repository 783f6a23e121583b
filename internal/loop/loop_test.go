package loop

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/config"
)

func TestBuildWidgets_SkipsDisabledAndIndexesSequentially(t *testing.T) {
	disabled := false
	cfg := &config.Config{
		Widgets: []config.WidgetConfig{
			{Type: "clock", Config: map[string]any{"format": "24h", "show_seconds": true, "show_date": false}},
			{Type: "clock", Enabled: &disabled, Config: map[string]any{"format": "24h"}},
			{Type: "quotes", Config: map[string]any{"rotation_interval": 30, "random": false}},
		},
	}

	widgets, items, err := buildWidgets(cfg, nil)
	require.NoError(t, err)
	require.Len(t, widgets, 2)
	require.Len(t, items, 2)
	require.Equal(t, 0, items[0].Index)
	require.Equal(t, 1, items[1].Index)
}

func TestBuildWidgets_InvalidWidgetConfigNamesOffendingIndex(t *testing.T) {
	cfg := &config.Config{
		Widgets: []config.WidgetConfig{
			{Type: "clock", Config: map[string]any{"format": "25h"}},
		},
	}

	_, _, err := buildWidgets(cfg, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "widgets[0]")
}

func TestBuildWidgets_UnknownTypeIsError(t *testing.T) {
	cfg := &config.Config{
		Widgets: []config.WidgetConfig{
			{Type: "nonexistent"},
		},
	}

	_, _, err := buildWidgets(cfg, nil)
	require.Error(t, err)
}
