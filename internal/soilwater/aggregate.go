package soilwater

import "github.com/agroclima/agroclima/internal/model/entities"

// AggregateTotals reduces the per-plant series into the total actual
// evapotranspiration per timestep. Summation runs in declared plant order so
// repeated runs produce bit-identical floating-point totals.
func AggregateTotals(series []entities.PlantSeries) []float64 {
	if len(series) == 0 {
		return nil
	}
	totals := make([]float64, len(series[0].Steps))
	for _, ps := range series {
		for t, step := range ps.Steps {
			totals[t] += step.ETActualMM
		}
	}
	return totals
}
