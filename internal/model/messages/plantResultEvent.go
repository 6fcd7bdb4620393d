package messages

import "time"

// PlantResultEvent is published per plant once a run completes. It carries
// the run totals, not the full series; the series goes to the report sink.
type PlantResultEvent struct {
	RunID           string    `json:"run_id"`
	PlantType       string    `json:"plant_type"`
	AreaM2          float64   `json:"area_m2"`
	Steps           int       `json:"steps"`
	TotalETActualMM float64   `json:"total_et_actual_mm"`
	TotalCoolingKWh float64   `json:"total_cooling_kwh"`
	FinalTheta      float64   `json:"final_theta"`
	Timestamp       time.Time `json:"timestamp"`
}
