package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/sony/gobreaker"
)

// PlantResult is the DTO served to dashboards.
type PlantResult struct {
	RunID      string  `json:"run_id"`
	PlantType  string  `json:"plant_type"`
	ETActualMM float64 `json:"et_actual_mm"`
	Time       string  `json:"time"` // RFC3339
}

func buildFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == "plant_result")
  |> filter(fn: (r) => r._field == "total_et_actual_mm")
  |> keep(columns: ["_time","_value","plant_type","run_id"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, limit)
}

func queryInt(r *http.Request, key string, def, min, max int) int {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < min {
				return min
			}
			if max > 0 && n > max {
				return max
			}
			return n
		}
	}
	return def
}

func fetchResults(ctx context.Context, influx influxdb2.Client, cfg Config, minutes, limit int) ([]PlantResult, error) {
	res, err := influx.QueryAPI(cfg.InfluxOrg).Query(ctx, buildFlux(cfg.InfluxBucket, minutes, limit))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Close() }()

	out := make([]PlantResult, 0, limit)
	for res.Next() {
		rec := res.Record()

		var amount float64
		switch v := rec.Value().(type) {
		case float64:
			amount = v
		case int64:
			amount = float64(v)
		}

		pr := PlantResult{
			ETActualMM: amount,
			Time:       rec.Time().UTC().Format(time.RFC3339),
		}
		if v, ok := rec.ValueByKey("plant_type").(string); ok {
			pr.PlantType = v
		}
		if v, ok := rec.ValueByKey("run_id").(string); ok {
			pr.RunID = v
		}
		out = append(out, pr)
	}
	if res.Err() != nil {
		return nil, res.Err()
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no results")
	}
	return out, nil
}

var lastGoodResults []PlantResult

func main() {
	cfg := loadConfig()

	influx := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer influx.Close()

	influxCB := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "influx",
		Interval: time.Duration(cfg.CBIntervalMs) * time.Millisecond,
		Timeout:  time.Duration(cfg.CBOpenMs) * time.Millisecond,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(cfg.CBFails)
		},
	})

	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// GET /results/latest?limit=20[&minutes=1440]
	http.HandleFunc("/results/latest", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		minutes := queryInt(r, "minutes", 1440, 1, 7*24*60)
		limit := queryInt(r, "limit", 20, 1, 500)

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(cfg.TimeoutMs)*time.Millisecond)
		defer cancel()

		var results []PlantResult
		if res, err := influxCB.Execute(func() (any, error) {
			return fetchResults(ctx, influx, cfg, minutes, limit)
		}); err == nil {
			results = res.([]PlantResult)
			lastGoodResults = results
		} else {
			// fall back to the last good response, if any
			results = lastGoodResults
			w.Header().Set("X-Stale", "true")
		}

		w.Header().Set("Content-Type", "application/json")
		if results == nil {
			results = []PlantResult{}
		}
		_ = json.NewEncoder(w).Encode(results)

		log.Printf("GET /results/latest [%dms] cb=%v results=%d",
			time.Since(start).Milliseconds(), influxCB.State(), len(results))
	})

	addr := ":" + cfg.Port
	log.Printf("gateway listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
