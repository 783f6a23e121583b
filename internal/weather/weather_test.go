package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshot_TemperatureConvertsToFahrenheit(t *testing.T) {
	s := Snapshot{TemperatureC: 0, Unit: Fahrenheit}
	require.Equal(t, 32.0, s.Temperature())
}

func TestSnapshot_TemperatureDefaultsToCelsius(t *testing.T) {
	s := Snapshot{TemperatureC: 21.5, Unit: Celsius}
	require.Equal(t, 21.5, s.Temperature())
}

func TestWeatherCodeDescription_Buckets(t *testing.T) {
	require.Equal(t, "clear", weatherCodeDescription(0))
	require.Equal(t, "partly cloudy", weatherCodeDescription(2))
	require.Equal(t, "rain", weatherCodeDescription(63))
	require.Equal(t, "storms", weatherCodeDescription(95))
}
