// Package analysis orchestrates one run: weather in, ET0 and per-plant
// water balances computed, report written, result events published.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agroclima/agroclima/internal/et"
	"github.com/agroclima/agroclima/internal/model/entities"
	"github.com/agroclima/agroclima/internal/model/messages"
	"github.com/agroclima/agroclima/internal/report"
	"github.com/agroclima/agroclima/internal/soilwater"
	"github.com/agroclima/agroclima/pkg/mqtt"
)

// WeatherSource supplies the ordered hourly series the run consumes.
type WeatherSource interface {
	Records(ctx context.Context) ([]entities.WeatherRecord, error)
}

// Result is the full output of one run, handed to the sinks.
type Result struct {
	RunID     string
	StartedAt time.Time
	Records   []entities.WeatherRecord
	ET0       []float64
	Plants    []entities.PlantSeries
	Totals    []float64
}

type Service struct {
	plants     []entities.PlantProfile
	source     WeatherSource
	publisher  mqtt.IPublisher // nil disables event publishing
	reportPath string          // empty disables the xlsx report

	plantTopicTmpl string
	runTopic       string
}

func NewService(plants []entities.PlantProfile, source WeatherSource, publisher mqtt.IPublisher, reportPath string) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("weather source is nil")
	}
	if len(plants) == 0 {
		return nil, fmt.Errorf("no plants to simulate")
	}
	for _, p := range plants {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return &Service{
		plants:         plants,
		source:         source,
		publisher:      publisher,
		reportPath:     reportPath,
		plantTopicTmpl: "result/plant/{type}",
		runTopic:       "event/runCompleted",
	}, nil
}

// Run executes the full pipeline. The computation itself is synchronous and
// pure; all I/O happens before (weather source) and after (report, events).
func (s *Service) Run(ctx context.Context) (*Result, error) {
	startedAt := time.Now().UTC()
	runID := uuid.NewString()

	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("weather source: %w", err)
	}
	if err := entities.ValidateSeries(records); err != nil {
		return nil, fmt.Errorf("weather series: %w", err)
	}
	log.Printf("analysis: run=%s records=%d plants=%d", runID, len(records), len(s.plants))

	et0Series := et.ComputeSeries(records)
	precip := make([]float64, len(records))
	for i, r := range records {
		precip[i] = r.PrecipMM
	}

	series, err := soilwater.RunAll(s.plants, et0Series, precip)
	if err != nil {
		return nil, err
	}
	totals := soilwater.AggregateTotals(series)

	res := &Result{
		RunID:     runID,
		StartedAt: startedAt,
		Records:   records,
		ET0:       et0Series,
		Plants:    series,
		Totals:    totals,
	}

	if s.reportPath != "" {
		if err := report.Write(s.reportPath, records, et0Series, series, totals); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		log.Printf("analysis: run=%s report written to %s", runID, s.reportPath)
	}

	if s.publisher != nil {
		if err := s.publishResults(res); err != nil {
			return nil, err
		}
	}

	for _, ps := range series {
		log.Printf("analysis: run=%s plant=%s et_total=%.2fmm cooling=%.3fkWh theta_final=%.4f",
			runID, ps.Profile.Type, ps.TotalETActualMM(), ps.TotalCoolingKWh(), ps.FinalTheta())
	}
	return res, nil
}

// publishResults emits one PlantResultEvent per plant (QoS 1) followed by a
// RunCompletedEvent.
func (s *Service) publishResults(res *Result) error {
	now := time.Now().UTC()
	totalET, totalCooling := 0.0, 0.0
	for _, ps := range res.Plants {
		evt := messages.PlantResultEvent{
			RunID:           res.RunID,
			PlantType:       ps.Profile.Type,
			AreaM2:          ps.Profile.AreaM2,
			Steps:           len(ps.Steps),
			TotalETActualMM: ps.TotalETActualMM(),
			TotalCoolingKWh: ps.TotalCoolingKWh(),
			FinalTheta:      ps.FinalTheta(),
			Timestamp:       now,
		}
		totalET += evt.TotalETActualMM
		totalCooling += evt.TotalCoolingKWh

		b, _ := json.Marshal(evt)
		topic := strings.Replace(s.plantTopicTmpl, "{type}", ps.Profile.Type, 1)
		if err := s.publisher.PublishToQos(topic, 1, false, string(b)); err != nil {
			return fmt.Errorf("publish plant result: %w", err)
		}
	}

	done := messages.RunCompletedEvent{
		RunID:           res.RunID,
		Plants:          len(res.Plants),
		Records:         len(res.Records),
		TotalETActualMM: totalET,
		TotalCoolingKWh: totalCooling,
		StartedAt:       res.StartedAt,
		Timestamp:       now,
	}
	b, _ := json.Marshal(done)
	if err := s.publisher.PublishMessage(s.runTopic, string(b)); err != nil {
		return fmt.Errorf("publish run completed: %w", err)
	}
	log.Printf("analysis: run=%s published %d plant events + completion", res.RunID, len(res.Plants))
	return nil
}
