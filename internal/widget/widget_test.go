package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_UnknownTypeIsError(t *testing.T) {
	_, err := New("bogus", nil, nil)
	require.Error(t, err)
}

func TestClock_TickCadenceProducesExpectedFrames(t *testing.T) {
	w, err := New("clock", map[string]any{"format": "24h", "show_seconds": true}, nil)
	require.NoError(t, err)

	cw := w.(*clockWidget)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var frames []string
	for i := 0; i < 4; i++ {
		t := base.Add(time.Duration(i) * time.Second)
		cw.now = func() time.Time { return t }
		cw.Tick()
		frames = append(frames, w.Content().Text)
	}

	require.Equal(t, []string{"12:00:00", "12:00:01", "12:00:02", "12:00:03"}, frames)
}

func TestClock_InvalidFormatIsValidationError(t *testing.T) {
	_, err := New("clock", map[string]any{"format": "26h"}, nil)
	require.Error(t, err)
}

func TestWeather_NoAPIKeyProducesWarningWithoutFetch(t *testing.T) {
	w, err := New("weather", map[string]any{"city": "Berlin", "api_key": ""}, nil)
	require.NoError(t, err)

	w.Tick()
	content := w.Content()
	require.Equal(t, KindText, content.Kind)
	require.Contains(t, content.Text, "Weather")
	require.Contains(t, content.Text, "no api key")
}

func TestWeather_InvalidUnitIsValidationError(t *testing.T) {
	_, err := New("weather", map[string]any{"city": "Berlin", "temperature_unit": "kelvin"}, nil)
	require.Error(t, err)
}

func TestQuotes_ClickThenScrollAdvancesThroughList(t *testing.T) {
	w, err := New("quotes", map[string]any{
		"rotation_interval": 3600,
		"random":            false,
	}, nil)
	require.NoError(t, err)

	qw := w.(*quotesWidget)
	qw.quotes = []string{"A", "B", "C"}

	require.Equal(t, "A", w.Content().Text)

	action := w.OnClick(1, 0.5, 0.5)
	require.Equal(t, ActionNextItem, action.Kind)
	require.Equal(t, "B", w.Content().Text)

	action = w.OnScroll(ScrollDown, 0.5, 0.5)
	require.Equal(t, ActionNextItem, action.Kind)
	require.Equal(t, "C", w.Content().Text)

	action = w.OnScroll(ScrollUp, 0.5, 0.5)
	require.Equal(t, ActionPreviousItem, action.Kind)
	require.Equal(t, "B", w.Content().Text)
}

func TestQuotes_ZeroRotationIntervalIsValidationError(t *testing.T) {
	_, err := New("quotes", map[string]any{"rotation_interval": 0}, nil)
	require.Error(t, err)
}

func TestCountdown_ParsesDateOnlyTarget(t *testing.T) {
	w, err := New("countdown", map[string]any{
		"label":       "Launch",
		"target_date": "2099-01-01",
	}, nil)
	require.NoError(t, err)
	require.Contains(t, w.Content().Text, "Launch")
}

func TestCountdown_InvalidDateIsValidationError(t *testing.T) {
	_, err := New("countdown", map[string]any{
		"label":       "Launch",
		"target_date": "not-a-date",
	}, nil)
	require.Error(t, err)
}

func TestCountdown_PastTargetClampsToZero(t *testing.T) {
	w, err := New("countdown", map[string]any{
		"label":       "Past",
		"target_date": "2000-01-01",
		"show_days":   true,
		"show_hours":  false,
		"show_minutes": false,
	}, nil)
	require.NoError(t, err)
	require.Contains(t, w.Content().Text, "0d")
}

func TestSystemMonitor_EmptyWhenAllSectionsDisabled(t *testing.T) {
	w, err := New("system_monitor", map[string]any{
		"show_cpu":    false,
		"show_memory": false,
		"show_disk":   false,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, KindEmpty, w.Content().Kind)
}

func TestProgress_ClampsValue(t *testing.T) {
	require.Equal(t, 1.0, Progress(1.5, "").Value)
	require.Equal(t, 0.0, Progress(-1, "").Value)
}
