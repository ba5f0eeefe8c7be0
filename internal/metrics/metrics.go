package metrics

import (
	"strconv"
	"time"

	"campus-guide-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_guide_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "campus_guide_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "route"},
	)

	GuideEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_guide_events_total",
			Help: "Engine events by type",
		},
		[]string{"type"},
	)

	AdvisorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_guide_advisor_calls_total",
			Help: "Advisor requests by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campus_guide_active_sessions",
			Help: "Number of live guide sessions",
		},
	)
)

// Recorder adapts the package counters to the advisor's Recorder.
type Recorder struct{}

func (Recorder) AdvisorCall(op, outcome string) {
	AdvisorCalls.WithLabelValues(op, outcome).Inc()
}

func ObserveEvent(e events.Event) {
	GuideEvents.WithLabelValues(e.EventType()).Inc()
}

// Middleware records count and latency per matched route.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		route := ctx.Route().Path
		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		RequestCount.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
