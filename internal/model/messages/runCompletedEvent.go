package messages

import "time"

// RunCompletedEvent is published once per analysis run, after all per-plant
// events.
type RunCompletedEvent struct {
	RunID           string    `json:"run_id"`
	Plants          int       `json:"plants"`
	Records         int       `json:"records"`
	TotalETActualMM float64   `json:"total_et_actual_mm"`
	TotalCoolingKWh float64   `json:"total_cooling_kwh"`
	StartedAt       time.Time `json:"started_at"`
	Timestamp       time.Time `json:"timestamp"`
}
