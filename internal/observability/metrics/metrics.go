package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for intake and scheduling flows.
type IntakeMetrics struct {
	sessionsStarted   prometheus.Counter
	messagesTotal     *prometheus.CounterVec
	pipelineTotal     *prometheus.CounterVec
	pipelineLatency   prometheus.Histogram
	appointmentsTotal *prometheus.CounterVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "intake",
			Name:      "sessions_started_total",
			Help:      "Total intake sessions opened",
		}),
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "intake",
			Name:      "messages_total",
			Help:      "Total intake messages processed, by conversation state",
		}, []string{"state"}),
		pipelineTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "scheduling",
			Name:      "pipeline_total",
			Help:      "Total scheduling pipeline runs",
		}, []string{"outcome"}),
		pipelineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carebridge",
			Subsystem: "scheduling",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of analyze-match-schedule processing",
			Buckets:   prometheus.DefBuckets,
		}),
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebridge",
			Subsystem: "scheduling",
			Name:      "appointments_total",
			Help:      "Total appointment finalizations",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.messagesTotal, m.pipelineTotal, m.pipelineLatency, m.appointmentsTotal)
	return m
}

func (m *IntakeMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *IntakeMetrics) ObserveMessage(state string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(state).Inc()
}

func (m *IntakeMetrics) ObservePipeline(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.pipelineTotal.WithLabelValues(outcome).Inc()
	m.pipelineLatency.Observe(seconds)
}

func (m *IntakeMetrics) ObserveAppointment(status string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(status).Inc()
}
