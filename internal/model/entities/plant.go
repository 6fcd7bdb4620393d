package entities

// PlantProfile holds the merged per-plant crop and soil parameters.
// Immutable once validated; one simulator instance owns each profile.
type PlantProfile struct {
	Type       string  `json:"type" yaml:"type"`
	AreaM2     float64 `json:"area_m2" yaml:"area_m2"`
	Kc         float64 `json:"kc" yaml:"kc"`
	RootDepthM float64 `json:"root_depth_m" yaml:"root_depth_m"`
	ThetaWP    float64 `json:"theta_wp" yaml:"theta_wp"`
	ThetaFC    float64 `json:"theta_fc" yaml:"theta_fc"`
}

// Validate rejects any parameter outside its physical domain. The θwp < θfc
// invariant also rules out the divide-by-zero in the stress interpolation,
// so the simulation itself never has to guard for it.
func (p PlantProfile) Validate() error {
	switch {
	case p.AreaM2 <= 0:
		return &ValidationError{Plant: p.Type, Field: "area_m2", Value: p.AreaM2, Reason: "must be > 0"}
	case p.Kc <= 0:
		return &ValidationError{Plant: p.Type, Field: "kc", Value: p.Kc, Reason: "must be > 0"}
	case p.RootDepthM <= 0:
		return &ValidationError{Plant: p.Type, Field: "root_depth_m", Value: p.RootDepthM, Reason: "must be > 0"}
	case p.ThetaWP < 0:
		return &ValidationError{Plant: p.Type, Field: "theta_wp", Value: p.ThetaWP, Reason: "must be >= 0"}
	case p.ThetaFC > 1:
		return &ValidationError{Plant: p.Type, Field: "theta_fc", Value: p.ThetaFC, Reason: "must be <= 1"}
	case p.ThetaWP >= p.ThetaFC:
		return &ValidationError{Plant: p.Type, Field: "theta_wp", Value: p.ThetaWP, Reason: "must be < theta_fc"}
	}
	return nil
}
