package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/agroclima/agroclima/internal/model/entities"
	"github.com/agroclima/agroclima/internal/plantcfg"
	"github.com/agroclima/agroclima/internal/weather"
)

// CSVSource reads the weather series from a local file.
type CSVSource struct {
	Path string
}

func (s CSVSource) Records(_ context.Context) ([]entities.WeatherRecord, error) {
	return weather.LoadCSVFile(s.Path)
}

// ArchiveSource fetches the series from the Open-Meteo archive.
type ArchiveSource struct {
	Client   *weather.ArchiveClient
	Lat, Lon float64
	Start    time.Time
	End      time.Time
}

func (s ArchiveSource) Records(ctx context.Context) ([]entities.WeatherRecord, error) {
	return s.Client.GetHourly(ctx, s.Lat, s.Lon, s.Start, s.End)
}

// SourceFromConfig picks the weather source a run config describes: a CSV
// path wins, otherwise lat/lon plus a date range select the archive API.
func SourceFromConfig(cfg *plantcfg.RunConfig) (WeatherSource, error) {
	w := cfg.Weather
	if w.CSVPath != "" {
		return CSVSource{Path: w.CSVPath}, nil
	}
	if w.StartDate == "" || w.EndDate == "" {
		return nil, fmt.Errorf("weather config: need csv_path or start_date/end_date")
	}
	start, err := time.Parse("2006-01-02", w.StartDate)
	if err != nil {
		return nil, fmt.Errorf("weather config: bad start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", w.EndDate)
	if err != nil {
		return nil, fmt.Errorf("weather config: bad end_date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("weather config: end_date before start_date")
	}
	return ArchiveSource{
		Client: weather.NewArchiveClient(),
		Lat:    w.Latitude,
		Lon:    w.Longitude,
		Start:  start,
		End:    end,
	}, nil
}
