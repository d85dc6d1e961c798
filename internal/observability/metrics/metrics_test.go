package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestIntakeMetricsObserve(t *testing.T) {
	m := NewIntakeMetrics(prometheus.NewRegistry())
	m.ObserveSessionStarted()
	m.ObserveMessage("greeting")
	m.ObservePipeline("matched", 0.5)
	m.ObserveAppointment("confirmed")
}

func TestIntakeMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)
	m.ObservePipeline("failed", 0.1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveSessionStarted()
	m.ObserveMessage("greeting")
	m.ObservePipeline("matched", 0.1)
	m.ObserveAppointment("confirmed")
}
