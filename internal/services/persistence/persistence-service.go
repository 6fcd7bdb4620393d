// Package persistence consumes plant-result events off the broker and
// writes them to InfluxDB.
package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agroclima/agroclima/internal/model"
	"github.com/agroclima/agroclima/pkg/dedup"
	"github.com/agroclima/agroclima/pkg/mqtt"
)

type Service struct {
	consumer mqtt.IConsumer[model.PlantResultEvent]
	writeAPI api.WriteAPIBlocking
	deduper  *dedup.Deduper

	eventsWritten *prometheus.CounterVec
	eventsDropped prometheus.Counter
}

func NewService(consumer mqtt.IConsumer[model.PlantResultEvent], writeAPI api.WriteAPIBlocking, reg prometheus.Registerer) (*Service, error) {
	if writeAPI == nil {
		return nil, fmt.Errorf("influx write api is nil")
	}

	s := &Service{
		consumer: consumer,
		writeAPI: writeAPI,
		deduper:  dedup.New(10*time.Minute, 20000),
		eventsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agroclima_plant_results_written_total",
			Help: "Plant result events written to InfluxDB, by plant type.",
		}, []string{"plant_type"}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agroclima_plant_results_dropped_total",
			Help: "Events dropped as duplicates or unparseable.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.eventsWritten, s.eventsDropped)
	}
	return s, nil
}

func (s *Service) Start(ctx context.Context) {
	s.consumer.SetHandler(s.handle)
	s.consumer.ConsumeMessage(ctx)
}

func (s *Service) handle(topic string, msg paho.Message) error {
	// Dedup before unmarshal: QoS 1 redeliveries carry identical payloads.
	h := sha256.Sum256(msg.Payload())
	if !s.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		s.eventsDropped.Inc()
		return nil
	}

	var evt model.PlantResultEvent
	if err := json.Unmarshal(msg.Payload(), &evt); err != nil {
		log.Printf("persistence: invalid JSON on %s: %v", topic, err)
		s.eventsDropped.Inc()
		return nil // do not block the stream
	}

	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	point := influxdb2.NewPoint("plant_result",
		map[string]string{
			"run_id":     evt.RunID,
			"plant_type": evt.PlantType,
		},
		map[string]interface{}{
			"steps":              evt.Steps,
			"area_m2":            evt.AreaM2,
			"total_et_actual_mm": evt.TotalETActualMM,
			"total_cooling_kwh":  evt.TotalCoolingKWh,
			"final_theta":        evt.FinalTheta,
		},
		ts)

	if err := s.writeAPI.WritePoint(context.Background(), point); err != nil {
		log.Printf("persistence: write error: %v", err)
		return err
	}
	s.eventsWritten.WithLabelValues(evt.PlantType).Inc()
	log.Printf("persistence: wrote run=%s plant=%s et_total=%.2fmm", evt.RunID, evt.PlantType, evt.TotalETActualMM)
	return nil
}
