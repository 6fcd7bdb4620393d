package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agroclima/agroclima/internal/model/entities"
)

func TestSchemaColumnLetter(t *testing.T) {
	s := Schema{Columns: []string{"T", "u2", "RH", "GHI", "Precip_mm"}}

	letter, err := s.ColumnLetter("T")
	require.NoError(t, err)
	assert.Equal(t, "A", letter)

	letter, err = s.ColumnLetter("GHI")
	require.NoError(t, err)
	assert.Equal(t, "D", letter)

	_, err = s.ColumnLetter("NonExistent")
	require.Error(t, err)
}

func TestBuildSchema(t *testing.T) {
	series := []entities.PlantSeries{
		{Profile: entities.PlantProfile{Type: "tomato"}},
		{Profile: entities.PlantProfile{Type: "olive"}},
	}
	s := BuildSchema(series)
	assert.Equal(t, "time", s.Columns[0])
	assert.Contains(t, s.Columns, "ET_actual_tomato")
	assert.Contains(t, s.Columns, "cooling_kwh_olive")
	assert.Equal(t, "ET_actual_total", s.Columns[len(s.Columns)-1])
}

func TestWriteWorkbook(t *testing.T) {
	records := []entities.WeatherRecord{
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), TempC: 16, WindSpeedMS: 1, RelHumidityPct: 80, GHIWm2: 0, PrecipMM: 0},
		{Timestamp: time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC), TempC: 18, WindSpeedMS: 2, RelHumidityPct: 70, GHIWm2: 150, PrecipMM: 0.3},
	}
	et0 := []float64{0, 0.42}
	series := []entities.PlantSeries{
		{
			Profile: entities.PlantProfile{Type: "tomato", AreaM2: 120, Kc: 1, RootDepthM: 0.3, ThetaWP: 0.1, ThetaFC: 0.3},
			Steps: []entities.StepResult{
				{Theta: 0.3, Ks: 1, ETActualMM: 0, CoolingKWh: 0},
				{Theta: 0.2986, Ks: 1, ETActualMM: 0.42, CoolingKWh: 0.0343},
			},
		},
	}
	totals := []float64{0, 0.42}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, records, et0, series, totals))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Results", "A1")
	require.NoError(t, err)
	assert.Equal(t, "time", got)

	schema := BuildSchema(series)
	letter, err := schema.ColumnLetter("ET_actual_tomato")
	require.NoError(t, err)
	header, err := f.GetCellValue("Results", letter+"1")
	require.NoError(t, err)
	assert.Equal(t, "ET_actual_tomato", header)
	val, err := f.GetCellValue("Results", letter+"3")
	require.NoError(t, err)
	assert.Equal(t, "0.42", val)
}
