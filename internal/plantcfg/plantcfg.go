// Package plantcfg loads the plant-properties table and the per-run
// configuration, and merges them into validated plant profiles.
package plantcfg

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/agroclima/agroclima/internal/model/entities"
)

// Properties is the per-crop parameter entry of the properties table.
type Properties struct {
	Kc         float64 `yaml:"kc"`
	RootDepthM float64 `yaml:"root_depth_m"`
	ThetaWP    float64 `yaml:"theta_wp"`
	ThetaFC    float64 `yaml:"theta_fc"`
}

// Table maps plant type → crop/soil parameters.
type Table struct {
	Plants map[string]Properties `yaml:"plants"`
}

// Selection is one plant requested by a run: which type, how much area.
type Selection struct {
	Type   string  `yaml:"type"`
	AreaM2 float64 `yaml:"area_m2"`
}

// RunConfig describes a single analysis run.
type RunConfig struct {
	Weather struct {
		CSVPath   string  `yaml:"csv_path"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
		StartDate string  `yaml:"start_date"` // YYYY-MM-DD, archive source only
		EndDate   string  `yaml:"end_date"`
	} `yaml:"weather"`
	Plants     []Selection `yaml:"plants"`
	ReportPath string      `yaml:"report_path"`
}

func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	if len(t.Plants) == 0 {
		return nil, fmt.Errorf("properties table %s: no plants defined", path)
	}
	return &t, nil
}

func LoadRunConfig(path string) (*RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var c RunConfig
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(c.Plants) == 0 {
		return nil, fmt.Errorf("config %s: no plants selected", path)
	}
	return &c, nil
}

// Available lists the known plant types in sorted order.
func (t *Table) Available() []string {
	out := make([]string, 0, len(t.Plants))
	for k := range t.Plants {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge resolves each selection against the properties table and returns the
// validated profiles in declared order. An unknown type yields a LookupError
// naming the available types; an out-of-domain parameter a ValidationError.
func Merge(selections []Selection, table *Table) ([]entities.PlantProfile, error) {
	profiles := make([]entities.PlantProfile, 0, len(selections))
	for _, sel := range selections {
		props, ok := table.Plants[sel.Type]
		if !ok {
			return nil, &entities.LookupError{Type: sel.Type, Available: table.Available()}
		}
		p := entities.PlantProfile{
			Type:       sel.Type,
			AreaM2:     sel.AreaM2,
			Kc:         props.Kc,
			RootDepthM: props.RootDepthM,
			ThetaWP:    props.ThetaWP,
			ThetaFC:    props.ThetaFC,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
