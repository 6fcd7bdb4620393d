package persistence

import (
	"encoding/json"
	"net/http"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

type healthHandler struct {
	mqtt   paho.Client
	influx influxdb2.Client
}

// NewHealthHandler reports broker and storage connectivity for /healthz.
func NewHealthHandler(m paho.Client, i influxdb2.Client) http.Handler {
	return &healthHandler{mqtt: m, influx: i}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status        string `json:"status"`
		MQTTConnected bool   `json:"mqtt_connected"`
		InfluxOK      bool   `json:"influx_ok"`
	}
	st := status{
		MQTTConnected: h.mqtt != nil && h.mqtt.IsConnectionOpen(),
		InfluxOK:      h.influx != nil,
	}
	switch {
	case st.MQTTConnected && st.InfluxOK:
		st.Status = "ok"
	case st.MQTTConnected || st.InfluxOK:
		st.Status = "degraded"
	default:
		st.Status = "down"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}
