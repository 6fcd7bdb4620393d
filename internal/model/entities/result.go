package entities

// StepResult is the per-timestep output of one plant's water balance.
type StepResult struct {
	Theta      float64 `json:"theta"`         // volumetric soil moisture after the step
	Ks         float64 `json:"ks"`            // water-stress coefficient used for the step
	ETActualMM float64 `json:"et_actual_mm"`  // soil-moisture-limited evapotranspiration, mm
	CoolingKWh float64 `json:"cooling_kwh"`   // evaporative-cooling energy over the plant area
}

// PlantSeries is one plant's full result sequence; its length always equals
// the weather series length.
type PlantSeries struct {
	Profile PlantProfile `json:"profile"`
	Steps   []StepResult `json:"steps"`
}

func (ps PlantSeries) TotalETActualMM() float64 {
	sum := 0.0
	for _, s := range ps.Steps {
		sum += s.ETActualMM
	}
	return sum
}

func (ps PlantSeries) TotalCoolingKWh() float64 {
	sum := 0.0
	for _, s := range ps.Steps {
		sum += s.CoolingKWh
	}
	return sum
}

// FinalTheta returns the soil moisture after the last step, or the field
// capacity initial state for an empty series.
func (ps PlantSeries) FinalTheta() float64 {
	if len(ps.Steps) == 0 {
		return ps.Profile.ThetaFC
	}
	return ps.Steps[len(ps.Steps)-1].Theta
}
