package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Unit is the temperature unit requested by the weather widget config.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Snapshot is the result of one successful fetch.
type Snapshot struct {
	City         string
	TemperatureC float64
	Unit         Unit
	Description  string
	FetchedAt    time.Time
}

// Temperature returns the snapshot's temperature converted to Unit.
func (s Snapshot) Temperature() float64 {
	if s.Unit == Fahrenheit {
		return s.TemperatureC*9/5 + 32
	}
	return s.TemperatureC
}

// Result is delivered on the channel Fetch returns: exactly one of
// Snapshot or Err is meaningful.
type Result struct {
	Snapshot Snapshot
	Err      error
}

// Fetcher resolves a city/units/api-key request to a Snapshot without
// blocking the caller.
type Fetcher interface {
	Fetch(city string, unit Unit, apiKey string) <-chan Result
}

// HTTPFetcher queries the Open-Meteo geocoding and forecast JSON
// endpoints. It never blocks its caller: Fetch spawns a goroutine and
// returns immediately.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewHTTPFetcher builds a fetcher with a bounded per-request timeout.
func NewHTTPFetcher(logger *slog.Logger) *HTTPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.open-meteo.com/v1/forecast",
		logger:  logger,
	}
}

type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Fetch resolves city to coordinates, then fetches current weather. The
// api_key parameter is accepted for interface symmetry with providers that
// require one; the default backend does not.
func (f *HTTPFetcher) Fetch(city string, unit Unit, apiKey string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		snap, err := f.fetch(city, unit)
		if err != nil {
			f.logger.Debug("weather fetch failed", "city", city, "error", err)
			out <- Result{Err: err}
			return
		}
		out <- Result{Snapshot: snap}
	}()
	return out
}

func (f *HTTPFetcher) fetch(city string, unit Unit) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lat, lon, err := f.geocode(ctx, city)
	if err != nil {
		return Snapshot{}, fmt.Errorf("weather: geocode %q: %w", city, err)
	}

	u := fmt.Sprintf("%s?latitude=%f&longitude=%f&current_weather=true", f.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("weather: forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("weather: forecast returned status %d", resp.StatusCode)
	}

	var fr forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return Snapshot{}, fmt.Errorf("weather: decode forecast: %w", err)
	}

	return Snapshot{
		City:         city,
		TemperatureC: fr.CurrentWeather.Temperature,
		Unit:         unit,
		Description:  weatherCodeDescription(fr.CurrentWeather.WeatherCode),
		FetchedAt:    time.Now(),
	}, nil
}

func (f *HTTPFetcher) geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	u := "https://geocoding-api.open-meteo.com/v1/search?name=" + url.QueryEscape(city) + "&count=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var gr geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return 0, 0, err
	}
	if len(gr.Results) == 0 {
		return 0, 0, fmt.Errorf("no matching location")
	}
	return gr.Results[0].Latitude, gr.Results[0].Longitude, nil
}

func weatherCodeDescription(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "showers"
	default:
		return "storms"
	}
}
