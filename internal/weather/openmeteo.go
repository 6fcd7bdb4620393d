package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/agroclima/agroclima/internal/model/entities"
)

const defaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// FAO log-profile factor bringing a 10 m wind measurement down to the 2 m
// reference height: 4.87 / ln(67.8*10 - 5.42).
var windHeightFactor = 4.87 / math.Log(67.8*10-5.42)

type archiveResp struct {
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		RelHumidity   []float64 `json:"relative_humidity_2m"`
		WindSpeed10m  []float64 `json:"wind_speed_10m"`
		ShortwaveWm2  []float64 `json:"shortwave_radiation"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// ArchiveClient fetches hourly historical weather from the Open-Meteo
// archive API.
type ArchiveClient struct {
	baseURL string
	http    *http.Client
}

func NewArchiveClient() *ArchiveClient {
	return &ArchiveClient{
		baseURL: defaultArchiveURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetHourly returns the hourly weather series for lat/lon over [start, end]
// (dates, inclusive). Wind is converted from the API's 10 m measurement to
// the 2 m reference height.
func (c *ArchiveClient) GetHourly(ctx context.Context, lat, lon float64, start, end time.Time) ([]entities.WeatherRecord, error) {
	url := fmt.Sprintf(
		"%s?latitude=%f&longitude=%f&start_date=%s&end_date=%s&hourly=temperature_2m,relative_humidity_2m,wind_speed_10m,shortwave_radiation,precipitation&wind_speed_unit=ms",
		c.baseURL, lat, lon, start.Format("2006-01-02"), end.Format("2006-01-02"))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("open-meteo status %d: %s", resp.StatusCode, string(b))
	}

	var out archiveResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	h := out.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, fmt.Errorf("open-meteo: no hourly data")
	}
	for name, l := range map[string]int{
		"temperature_2m":       len(h.Temperature),
		"relative_humidity_2m": len(h.RelHumidity),
		"wind_speed_10m":       len(h.WindSpeed10m),
		"shortwave_radiation":  len(h.ShortwaveWm2),
		"precipitation":        len(h.Precipitation),
	} {
		if l != n {
			return nil, fmt.Errorf("open-meteo: %s has %d samples, expected %d", name, l, n)
		}
	}

	records := make([]entities.WeatherRecord, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse("2006-01-02T15:04", h.Time[i])
		if err != nil {
			return nil, fmt.Errorf("open-meteo: bad timestamp %q: %w", h.Time[i], err)
		}
		records[i] = entities.WeatherRecord{
			Timestamp:      ts,
			TempC:          h.Temperature[i],
			WindSpeedMS:    h.WindSpeed10m[i] * windHeightFactor,
			RelHumidityPct: h.RelHumidity[i],
			GHIWm2:         h.ShortwaveWm2[i],
			PrecipMM:       h.Precipitation[i],
		}
	}
	if err := entities.ValidateSeries(records); err != nil {
		return nil, fmt.Errorf("open-meteo: %w", err)
	}
	return records, nil
}
