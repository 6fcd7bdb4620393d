package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/agroclima/agroclima/internal/plantcfg"
	"github.com/agroclima/agroclima/internal/services/analysis"
	"github.com/agroclima/agroclima/pkg/mqtt"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	cfgPath := envStr("CONFIG_PATH", "config.yaml")
	plantsPath := envStr("PLANTS_PATH", "plants.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	table, err := plantcfg.LoadTable(plantsPath)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}
	runCfg, err := plantcfg.LoadRunConfig(cfgPath)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}
	plants, err := plantcfg.Merge(runCfg.Plants, table)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}
	source, err := analysis.SourceFromConfig(runCfg)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}

	reportPath := envStr("REPORT_PATH", runCfg.ReportPath)

	// The broker is optional: with no MQTT_HOST the run stays local and only
	// the report is produced.
	var publisher mqtt.IPublisher
	if host := envStr("MQTT_HOST", ""); host != "" {
		client, err := mqtt.NewConn(ctx, &mqtt.BrokerConfig{
			Host:     host,
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "analysis-service"),
		})
		if err != nil {
			log.Fatalf("analysis: mqtt connection error: %v", err)
		}
		publisher = mqtt.NewPublisher(client)
		defer publisher.Close()
	}

	svc, err := analysis.NewService(plants, source, publisher, reportPath)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}
	if _, err := svc.Run(ctx); err != nil {
		log.Fatalf("analysis: run failed: %v", err)
	}
}
