package analysis

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclima/agroclima/internal/model/entities"
	"github.com/agroclima/agroclima/internal/model/messages"
	"github.com/agroclima/agroclima/internal/plantcfg"
)

type staticSource struct {
	records []entities.WeatherRecord
	err     error
}

func (s staticSource) Records(context.Context) ([]entities.WeatherRecord, error) {
	return s.records, s.err
}

type capturingPublisher struct {
	topics   []string
	payloads []string
}

func (p *capturingPublisher) PublishMessage(topic, payload string) error {
	return p.PublishToQos(topic, 0, false, payload)
}

func (p *capturingPublisher) PublishToQos(topic string, _ byte, _ bool, payload string) error {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturingPublisher) Close() {}

func testRecords(n int) []entities.WeatherRecord {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entities.WeatherRecord, n)
	for i := range out {
		out[i] = entities.WeatherRecord{
			Timestamp:      base.Add(time.Duration(i) * time.Hour),
			TempC:          18 + float64(i%12),
			WindSpeedMS:    1.5,
			RelHumidityPct: 60,
			GHIWm2:         float64((i % 12) * 80),
			PrecipMM:       0,
		}
	}
	return out
}

func testPlants() []entities.PlantProfile {
	return []entities.PlantProfile{
		{Type: "tomato", AreaM2: 120, Kc: 1.15, RootDepthM: 0.4, ThetaWP: 0.1, ThetaFC: 0.3},
		{Type: "olive", AreaM2: 300, Kc: 0.65, RootDepthM: 1.2, ThetaWP: 0.12, ThetaFC: 0.33},
	}
}

func TestRunProducesAlignedSeries(t *testing.T) {
	svc, err := NewService(testPlants(), staticSource{records: testRecords(48)}, nil, "")
	require.NoError(t, err)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.ET0, 48)
	require.Len(t, res.Totals, 48)
	require.Len(t, res.Plants, 2)
	for i, ps := range res.Plants {
		assert.Equal(t, testPlants()[i].Type, ps.Profile.Type, "plant order preserved")
		assert.Len(t, ps.Steps, 48)
	}
	for tIdx := range res.Totals {
		want := res.Plants[0].Steps[tIdx].ETActualMM + res.Plants[1].Steps[tIdx].ETActualMM
		assert.InDelta(t, want, res.Totals[tIdx], 1e-9)
	}
}

func TestRunPublishesEvents(t *testing.T) {
	pub := &capturingPublisher{}
	svc, err := NewService(testPlants(), staticSource{records: testRecords(24)}, pub, "")
	require.NoError(t, err)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, pub.topics, 3) // two plants + completion
	assert.Equal(t, "result/plant/tomato", pub.topics[0])
	assert.Equal(t, "result/plant/olive", pub.topics[1])
	assert.Equal(t, "event/runCompleted", pub.topics[2])

	var evt messages.PlantResultEvent
	require.NoError(t, json.Unmarshal([]byte(pub.payloads[0]), &evt))
	assert.Equal(t, res.RunID, evt.RunID)
	assert.Equal(t, "tomato", evt.PlantType)
	assert.Equal(t, 24, evt.Steps)
	assert.InDelta(t, res.Plants[0].TotalETActualMM(), evt.TotalETActualMM, 1e-9)

	var done messages.RunCompletedEvent
	require.NoError(t, json.Unmarshal([]byte(pub.payloads[2]), &done))
	assert.Equal(t, 2, done.Plants)
	assert.Equal(t, 24, done.Records)
}

func TestRunWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	svc, err := NewService(testPlants(), staticSource{records: testRecords(12)}, nil, path)
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestNewServiceRejectsInvalidPlant(t *testing.T) {
	bad := testPlants()
	bad[0].Kc = 0
	_, err := NewService(bad, staticSource{}, nil, "")
	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRunDeterministic(t *testing.T) {
	records := testRecords(36)
	mk := func() *Result {
		svc, err := NewService(testPlants(), staticSource{records: records}, nil, "")
		require.NoError(t, err)
		res, err := svc.Run(context.Background())
		require.NoError(t, err)
		return res
	}
	a, b := mk(), mk()
	assert.Equal(t, a.ET0, b.ET0)
	assert.Equal(t, a.Totals, b.Totals)
	for i := range a.Plants {
		assert.Equal(t, a.Plants[i].Steps, b.Plants[i].Steps)
	}
}

func TestSourceFromConfig(t *testing.T) {
	t.Run("csv wins", func(t *testing.T) {
		cfg := &plantcfg.RunConfig{}
		cfg.Weather.CSVPath = "weather.csv"
		src, err := SourceFromConfig(cfg)
		require.NoError(t, err)
		assert.IsType(t, CSVSource{}, src)
	})
	t.Run("archive with date range", func(t *testing.T) {
		cfg := &plantcfg.RunConfig{}
		cfg.Weather.Latitude = 41.9
		cfg.Weather.Longitude = 12.5
		cfg.Weather.StartDate = "2024-06-01"
		cfg.Weather.EndDate = "2024-06-07"
		src, err := SourceFromConfig(cfg)
		require.NoError(t, err)
		assert.IsType(t, ArchiveSource{}, src)
	})
	t.Run("missing everything", func(t *testing.T) {
		_, err := SourceFromConfig(&plantcfg.RunConfig{})
		require.Error(t, err)
	})
	t.Run("reversed range", func(t *testing.T) {
		cfg := &plantcfg.RunConfig{}
		cfg.Weather.StartDate = "2024-06-07"
		cfg.Weather.EndDate = "2024-06-01"
		_, err := SourceFromConfig(cfg)
		require.Error(t, err)
	})
}
