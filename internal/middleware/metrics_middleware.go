package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors. It records HTTP traffic
// as fiber middleware and usecase outcomes through the usecase.Metrics methods.
type Metrics struct {
	gatherer         prometheus.Gatherer
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	reportBuilds     *prometheus.CounterVec
	reportDuration   *prometheus.HistogramVec
	candidateCreates *prometheus.CounterVec
	summaries        *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vrecruit_http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vrecruit_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		reportBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vrecruit_report_builds_total",
				Help: "Report builds by outcome.",
			},
			[]string{"outcome"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vrecruit_report_build_duration_seconds",
				Help:    "Time spent fetching and aggregating a report.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		candidateCreates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vrecruit_candidate_creations_total",
				Help: "Candidate registrations by outcome.",
			},
			[]string{"outcome"},
		),
		summaries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vrecruit_summaries_total",
				Help: "Comment summaries by source.",
			},
			[]string{"source"},
		),
	}
}

// Handler records count and latency per matched route.
func (m *Metrics) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Exposition serves the registry in the prometheus text format.
func (m *Metrics) Exposition() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

func (m *Metrics) RecordReportBuild(outcome string, duration time.Duration) {
	m.reportBuilds.WithLabelValues(outcome).Inc()
	m.reportDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordCandidateCreate(outcome string) {
	m.candidateCreates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSummary(source string) {
	m.summaries.WithLabelValues(source).Inc()
}
