// Package et implements the hourly FAO-56 Penman-Monteith reference
// evapotranspiration from single weather samples.
package et

import (
	"math"

	"github.com/agroclima/agroclima/internal/model/entities"
)

const (
	// psychrometric constant, kPa/°C (fixed, sea-level standard)
	gamma = 0.0665
	// fixed net-radiation fraction of global horizontal irradiance
	netRadiationFactor = 0.8
)

// SaturationVapourPressure returns es in kPa for an air temperature in °C
// (Tetens equation). Valid over the physical input range; the formula has a
// singularity only at T = -237.3 °C which is outside any sane input.
func SaturationVapourPressure(tempC float64) float64 {
	return 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
}

// DeltaVapourPressure returns the slope of the saturation vapour pressure
// curve at tempC, kPa/°C.
func DeltaVapourPressure(tempC float64) float64 {
	d := tempC + 237.3
	return 4098 * SaturationVapourPressure(tempC) / (d * d)
}

// CalculateET0 converts one weather sample into a reference
// evapotranspiration rate in mm/hour. Sub-daily net radiation can be
// negative at night; the result is clamped so those samples never yield a
// negative evapotranspiration. Any finite input produces a finite
// non-negative output.
func CalculateET0(w entities.WeatherRecord) float64 {
	es := SaturationVapourPressure(w.TempC)
	ea := es * w.RelHumidityPct / 100
	delta := DeltaVapourPressure(w.TempC)
	rn := w.GHIWm2 * netRadiationFactor / 3.6

	num := 0.408*delta*rn + gamma*(900/(w.TempC+273))*w.WindSpeedMS*(es-ea)
	den := delta + gamma*(1+0.34*w.WindSpeedMS)

	et0 := num / den
	if et0 < 0 {
		return 0
	}
	return et0
}

// ComputeSeries maps a weather series onto its ET0 series. The result is
// shared read-only by every plant simulator.
func ComputeSeries(records []entities.WeatherRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = CalculateET0(r)
	}
	return out
}
