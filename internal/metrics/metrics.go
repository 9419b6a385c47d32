package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// outcome: "matched" or "placeholder"
	MissionGenerations *prometheus.CounterVec
	// result: "added" or "rejected"
	SelectionAdds *prometheus.CounterVec

	BotMessages prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dailyquest_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dailyquest_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		MissionGenerations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dailyquest_mission_generations_total",
			Help: "Mission generation calls by outcome",
		}, []string{"outcome"}),
		SelectionAdds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dailyquest_selection_adds_total",
			Help: "Daily selection add attempts by result",
		}, []string{"result"}),
		BotMessages: factory.NewCounter(prometheus.CounterOpts{
			Name: "dailyquest_bot_messages_total",
			Help: "Telegram messages handled",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordGeneration(placeholder bool) {
	outcome := "matched"
	if placeholder {
		outcome = "placeholder"
	}
	m.MissionGenerations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSelectionAdd(rejected bool) {
	result := "added"
	if rejected {
		result = "rejected"
	}
	m.SelectionAdds.WithLabelValues(result).Inc()
}
