// Package weather supplies the hourly weather series the analysis consumes,
// either from a local CSV record or from the Open-Meteo archive API.
package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agroclima/agroclima/internal/model/entities"
)

// accepted timestamp layouts for the optional time column
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"}

// ReadCSV parses an hourly weather record. The header row names the columns;
// T, u2, RH, GHI and Precip_mm are required, time is optional. Records are
// validated as they are read and the first offending row aborts the parse.
func ReadCSV(r io.Reader) ([]entities.WeatherRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"T", "u2", "RH", "GHI", "Precip_mm"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("weather csv: missing column %q", required)
		}
	}

	var out []entities.WeatherRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := entities.WeatherRecord{}
		if idx, ok := col["time"]; ok {
			ts, err := parseTime(row[idx])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			rec.Timestamp = ts
		}
		fields := []struct {
			name string
			dst  *float64
		}{
			{"T", &rec.TempC},
			{"u2", &rec.WindSpeedMS},
			{"RH", &rec.RelHumidityPct},
			{"GHI", &rec.GHIWm2},
			{"Precip_mm", &rec.PrecipMM},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col[f.name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("weather csv: no data rows")
	}
	return out, nil
}

// LoadCSVFile reads a weather CSV from disk.
func LoadCSVFile(path string) ([]entities.WeatherRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
