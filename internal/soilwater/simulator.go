// Package soilwater implements the per-plant soil-water-balance recurrence:
// stress coefficient, infiltration/runoff partitioning, moisture state update
// and the derived evaporative-cooling energy.
package soilwater

import (
	"fmt"
	"sync"

	"github.com/agroclima/agroclima/internal/model/entities"
)

const (
	// Precipitation above this per-step intensity is partially lost to
	// surface runoff.
	runoffThresholdMM = 20.0
	// Fraction of the excess above the threshold that still infiltrates.
	excessInfiltrationFrac = 0.3
)

// Simulator owns one plant's mutable soil-moisture state and walks it
// forward over the shared ET0/precipitation timeline. Steps are strictly
// sequential; distinct simulators are independent.
type Simulator struct {
	profile entities.PlantProfile
	theta   float64
}

// NewSimulator validates the profile and initializes soil moisture at field
// capacity. Invalid parameters are rejected here, never mid-simulation.
func NewSimulator(p entities.PlantProfile) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{profile: p, theta: p.ThetaFC}, nil
}

// StressCoefficient returns Ks in [0,1] for the current moisture state.
// The boundary cases take precedence over the interpolation, so θ == θfc
// yields exactly 1 and θ == θwp exactly 0.
func (s *Simulator) StressCoefficient() float64 {
	p := s.profile
	switch {
	case s.theta >= p.ThetaFC:
		return 1
	case s.theta <= p.ThetaWP:
		return 0
	default:
		return (s.theta - p.ThetaWP) / (p.ThetaFC - p.ThetaWP)
	}
}

// infiltrationMM partitions a per-step precipitation depth into the part that
// enters the soil column. Below the intensity threshold everything
// infiltrates; above it only the first 20 mm plus 30% of the excess does.
func infiltrationMM(precipMM float64) float64 {
	if precipMM <= runoffThresholdMM {
		return precipMM
	}
	return runoffThresholdMM + excessInfiltrationFrac*(precipMM-runoffThresholdMM)
}

// Step advances the water balance by one timestep and returns the step
// result. θ is mutated exactly once and clamped to [θwp, θfc].
func (s *Simulator) Step(et0MM, precipMM float64) entities.StepResult {
	p := s.profile

	ks := s.StressCoefficient()
	etActual := ks * p.Kc * et0MM

	infilM := infiltrationMM(precipMM) / 1000.0
	s.theta += (infilM - etActual/1000.0) / p.RootDepthM
	if s.theta > p.ThetaFC {
		s.theta = p.ThetaFC
	}
	if s.theta < p.ThetaWP {
		s.theta = p.ThetaWP
	}

	return entities.StepResult{
		Theta:      s.theta,
		Ks:         ks,
		ETActualMM: etActual,
		CoolingKWh: CoolingEnergyKWh(etActual, p.AreaM2),
	}
}

// Run consumes the full ET0 and precipitation series and returns the plant's
// result sequence, one entry per timestep.
func (s *Simulator) Run(et0Series, precipSeries []float64) (entities.PlantSeries, error) {
	if len(et0Series) != len(precipSeries) {
		return entities.PlantSeries{}, fmt.Errorf("series length mismatch: et0=%d precip=%d",
			len(et0Series), len(precipSeries))
	}
	steps := make([]entities.StepResult, len(et0Series))
	for t := range et0Series {
		steps[t] = s.Step(et0Series[t], precipSeries[t])
	}
	return entities.PlantSeries{Profile: s.profile, Steps: steps}, nil
}

// RunAll simulates every plant against the shared series. Plants are mutually
// independent (disjoint state, read-only inputs) so each runs on its own
// goroutine; results land in declared plant order regardless of scheduling.
func RunAll(profiles []entities.PlantProfile, et0Series, precipSeries []float64) ([]entities.PlantSeries, error) {
	sims := make([]*Simulator, len(profiles))
	for i, p := range profiles {
		sim, err := NewSimulator(p)
		if err != nil {
			return nil, err
		}
		sims[i] = sim
	}

	out := make([]entities.PlantSeries, len(profiles))
	errs := make([]error, len(profiles))
	var wg sync.WaitGroup
	for i := range sims {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], errs[i] = sims[i].Run(et0Series, precipSeries)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
