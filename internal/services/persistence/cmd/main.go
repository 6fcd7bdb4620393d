package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agroclima/agroclima/internal/services/persistence"
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
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === Influx ===
	influx := influxdb2.NewClient(envStr("INFLUX_URL", "http://localhost:8086"), os.Getenv("INFLUX_TOKEN"))
	defer influx.Close()
	writeAPI := influx.WriteAPIBlocking(envStr("INFLUX_ORG", "agroclima"), envStr("INFLUX_BUCKET", "results"))

	// === MQTT ===
	client, err := mqtt.NewConn(ctx, &mqtt.BrokerConfig{
		Host:     envStr("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     envStr("MQTT_USER", "guest"),
		Password: envStr("MQTT_PASSWORD", "guest"),
		ClientID: envStr("HOSTNAME", "persistence-service"),
	})
	if err != nil {
		log.Fatalf("persistence: mqtt connection error: %v", err)
	}
	// Plant results are published at QoS 1; dedup in the service absorbs
	// redeliveries.
	consumer := mqtt.NewConsumer(client, envStr("RESULT_TOPIC", "result/plant/#"), 1, nil)

	reg := prometheus.NewRegistry()
	svc, err := persistence.NewService(consumer, writeAPI, reg)
	if err != nil {
		log.Fatalf("persistence: %v", err)
	}

	// === HTTP: metrics + health ===
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", persistence.NewHealthHandler(client, influx))
	go func() {
		addr := ":" + strconv.Itoa(envInt("HTTP_PORT", 8080))
		log.Printf("persistence: http listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("persistence: http server error: %v", err)
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	log.Println("persistence: consuming plant results...")
	svc.Start(ctx)
}
