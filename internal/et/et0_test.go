package et

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclima/agroclima/internal/model/entities"
)

func TestSaturationVapourPressure(t *testing.T) {
	// Known value: at 20 °C, es ≈ 2.338 kPa
	assert.InDelta(t, 2.338, SaturationVapourPressure(20), 1e-3)
}

func TestDeltaVapourPressureIncreasing(t *testing.T) {
	prev := DeltaVapourPressure(0)
	for temp := 0.5; temp <= 45; temp += 0.5 {
		cur := DeltaVapourPressure(temp)
		require.Greaterf(t, cur, prev, "delta not increasing at T=%.1f", temp)
		prev = cur
	}
}

func TestCalculateET0Typical(t *testing.T) {
	w := entities.WeatherRecord{TempC: 25, WindSpeedMS: 2, RelHumidityPct: 60, GHIWm2: 500}
	et0 := CalculateET0(w)
	require.GreaterOrEqual(t, et0, 0.0)
	assert.False(t, math.IsNaN(et0) || math.IsInf(et0, 0), "result must be finite")
}

func TestCalculateET0NonNegative(t *testing.T) {
	cases := []struct {
		name string
		w    entities.WeatherRecord
	}{
		{"zero RH", entities.WeatherRecord{TempC: 25, WindSpeedMS: 2, RelHumidityPct: 0, GHIWm2: 500}},
		{"saturated air at night", entities.WeatherRecord{TempC: 10, WindSpeedMS: 0, RelHumidityPct: 100, GHIWm2: 0}},
		{"cold calm", entities.WeatherRecord{TempC: -5, WindSpeedMS: 0.1, RelHumidityPct: 90, GHIWm2: 20}},
		{"hot dry windy", entities.WeatherRecord{TempC: 42, WindSpeedMS: 8, RelHumidityPct: 10, GHIWm2: 950}},
		{"all zero", entities.WeatherRecord{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateET0(tc.w)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestComputeSeries(t *testing.T) {
	records := []entities.WeatherRecord{
		{TempC: 18, WindSpeedMS: 1, RelHumidityPct: 70, GHIWm2: 0},
		{TempC: 22, WindSpeedMS: 2, RelHumidityPct: 55, GHIWm2: 300},
		{TempC: 27, WindSpeedMS: 3, RelHumidityPct: 40, GHIWm2: 700},
	}
	series := ComputeSeries(records)
	require.Len(t, series, len(records))
	for i, v := range series {
		assert.Equalf(t, CalculateET0(records[i]), v, "series[%d] differs from direct call", i)
	}
}
