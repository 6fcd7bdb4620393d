package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string
	TimeoutMs    int

	// circuit breaker verso Influx
	CBFails      int
	CBOpenMs     int
	CBIntervalMs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:         getenv("PORT", "5009"),
		InfluxURL:    getenv("INFLUX_URL", "http://influxdb:8086"),
		InfluxToken:  getenv("INFLUX_TOKEN", ""),
		InfluxOrg:    getenv("INFLUX_ORG", "agroclima"),
		InfluxBucket: getenv("INFLUX_BUCKET", "results"),
		TimeoutMs:    getenvInt("TIMEOUT_MS", 3000),

		CBFails:      getenvInt("CB_FAILS", 3),
		CBOpenMs:     getenvInt("CB_OPEN_MS", 10000),
		CBIntervalMs: getenvInt("CB_INTERVAL_MS", 60000),
	}
}
