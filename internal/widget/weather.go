package widget

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cosmicwidgetd/cosmicwidgetd/internal/weather"
)

const minWeatherIntervalSeconds = 60

type weatherWidget struct {
	BaseWidget
	logger *slog.Logger

	city     string
	unit     weather.Unit
	apiKey   string
	interval time.Duration
	noAPIKey bool

	fetcher  weather.Fetcher
	pending  <-chan weather.Result
	fetching bool

	lastText string
	errText  string
}

func newWeather(cfg map[string]any, logger *slog.Logger) (Widget, error) {
	city, ok := stringField(cfg, "city", "")
	if !ok {
		return nil, fmt.Errorf("widget[weather]: city must be a string")
	}
	apiKey, ok := stringField(cfg, "api_key", "")
	if !ok {
		return nil, fmt.Errorf("widget[weather]: api_key must be a string")
	}
	unitStr, ok := stringField(cfg, "temperature_unit", "celsius")
	if !ok || !oneOf(unitStr, "celsius", "fahrenheit") {
		return nil, fmt.Errorf("widget[weather]: temperature_unit must be one of \"celsius\", \"fahrenheit\"")
	}
	intervalSeconds, ok := intField(cfg, "update_interval", 600)
	if !ok {
		return nil, fmt.Errorf("widget[weather]: update_interval must be an integer")
	}
	if intervalSeconds < minWeatherIntervalSeconds {
		logger.Warn("widget[weather]: update_interval below recommended minimum", "seconds", intervalSeconds, "minimum", minWeatherIntervalSeconds)
	}

	w := &weatherWidget{
		logger:   logger,
		city:     city,
		unit:     weather.Unit(unitStr),
		apiKey:   apiKey,
		interval: time.Duration(intervalSeconds) * time.Second,
		noAPIKey: apiKey == "",
		fetcher:  weather.NewHTTPFetcher(logger),
	}

	if w.noAPIKey {
		w.errText = "no api key"
	}
	return w, nil
}

func (w *weatherWidget) Info() Info {
	return Info{
		ID:              "weather",
		DisplayName:     "Weather",
		PreferredHeight: 40,
		MinHeight:       20,
		IconGlyph:       iconWeatherCloud,
	}
}

func (w *weatherWidget) Tick() {
	if w.noAPIKey {
		return
	}

	if w.pending != nil {
		select {
		case result, ok := <-w.pending:
			if ok {
				w.applyResult(result)
			}
			w.pending = nil
			w.fetching = false
		default:
		}
		return
	}

	if !w.fetching {
		w.fetching = true
		w.pending = w.fetcher.Fetch(w.city, w.unit, w.apiKey)
	}
}

func (w *weatherWidget) applyResult(result weather.Result) {
	if result.Err != nil {
		w.errText = result.Err.Error()
		return
	}
	w.errText = ""
	snap := result.Snapshot
	w.lastText = fmt.Sprintf("%s  %.0f°  %s", snap.City, snap.Temperature(), snap.Description)
}

func (w *weatherWidget) Content() Content {
	if w.noAPIKey {
		return Text("⚠ Weather: no api key", Medium)
	}
	if w.errText != "" {
		return Text(fmt.Sprintf("⚠ Weather: %s", w.errText), Medium)
	}
	if w.lastText == "" {
		return Empty()
	}
	return Text(w.lastText, Medium)
}

func (w *weatherWidget) UpdateInterval() time.Duration {
	return w.interval
}
