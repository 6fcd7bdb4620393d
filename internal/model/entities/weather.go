package entities

import (
	"fmt"
	"math"
	"time"
)

// WeatherRecord is one hourly sample of the driving weather series.
// The order of records defines the simulation timeline.
type WeatherRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	TempC          float64   `json:"temp_c"`     // air temperature, °C
	WindSpeedMS    float64   `json:"wind_ms"`    // wind speed at 2 m, m/s
	RelHumidityPct float64   `json:"rh_pct"`     // relative humidity, %
	GHIWm2         float64   `json:"ghi_wm2"`    // global horizontal irradiance, W/m²
	PrecipMM       float64   `json:"precip_mm"`  // precipitation over the hour, mm
}

func (w WeatherRecord) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"temp_c", w.TempC},
		{"wind_ms", w.WindSpeedMS},
		{"rh_pct", w.RelHumidityPct},
		{"ghi_wm2", w.GHIWm2},
		{"precip_mm", w.PrecipMM},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("weather record %s: %s is not finite", w.Timestamp.Format(time.RFC3339), f.name)
		}
	}
	if w.RelHumidityPct < 0 || w.RelHumidityPct > 100 {
		return fmt.Errorf("weather record %s: rh_pct=%.2f outside [0,100]", w.Timestamp.Format(time.RFC3339), w.RelHumidityPct)
	}
	return nil
}

// ValidateSeries checks every record and reports the first offender by index.
func ValidateSeries(records []WeatherRecord) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
