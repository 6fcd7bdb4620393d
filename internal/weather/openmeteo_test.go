package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveClientGetHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "wind_speed_unit=ms")
		_, _ = w.Write([]byte(`{"hourly":{
			"time":["2024-06-01T00:00","2024-06-01T01:00"],
			"temperature_2m":[16.2,15.8],
			"relative_humidity_2m":[82,85],
			"wind_speed_10m":[2.0,1.5],
			"shortwave_radiation":[0,0],
			"precipitation":[0,0.4]}}`))
	}))
	defer srv.Close()

	c := NewArchiveClient()
	c.baseURL = srv.URL

	records, err := c.GetHourly(context.Background(), 41.9, 12.5,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 16.2, records[0].TempC)
	// 10 m wind scaled down to the 2 m reference height
	assert.InDelta(t, 2.0*windHeightFactor, records[0].WindSpeedMS, 1e-12)
	assert.Equal(t, 0.4, records[1].PrecipMM)
}

func TestArchiveClientLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly":{
			"time":["2024-06-01T00:00","2024-06-01T01:00"],
			"temperature_2m":[16.2],
			"relative_humidity_2m":[82,85],
			"wind_speed_10m":[2.0,1.5],
			"shortwave_radiation":[0,0],
			"precipitation":[0,0.4]}}`))
	}))
	defer srv.Close()

	c := NewArchiveClient()
	c.baseURL = srv.URL
	_, err := c.GetHourly(context.Background(), 0, 0, time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature_2m")
}
