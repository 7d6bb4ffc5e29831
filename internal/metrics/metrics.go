package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-docs/internal/commands"
	"github.com/goliatone/go-docs/internal/site"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "docs"

// Metrics holds the documentation collectors on an isolated registry so
// several instances (one per test, for example) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	RenderCacheTotal *prometheus.CounterVec
	ResolveTotal     *prometheus.CounterVec

	BuildsTotal          *prometheus.CounterVec
	BuildDurationSeconds prometheus.Histogram
	BuildPages           prometheus.Gauge

	CommandsTotal          *prometheus.CounterVec
	CommandDurationSeconds *prometheus.HistogramVec
}

// New registers every collector under namespace. A blank namespace uses
// DefaultNamespace.
func New(namespace string) *Metrics {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route"},
		),
		RenderCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_cache_total",
				Help:      "Render cache lookups by result.",
			},
			[]string{"result"},
		),
		ResolveTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "route_resolve_total",
				Help:      "Public route resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "static_builds_total",
				Help:      "Static site builds by result.",
			},
			[]string{"result"},
		),
		BuildDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "static_build_duration_seconds",
				Help:      "Static site build duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		BuildPages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "static_build_pages",
				Help:      "Pages written by the last static build.",
			},
		),
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Command executions by message type and status.",
			},
			[]string{"command", "status"},
		),
		CommandDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command execution duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"command"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.RenderCacheTotal,
		m.ResolveTotal,
		m.BuildsTotal,
		m.BuildDurationSeconds,
		m.BuildPages,
		m.CommandsTotal,
		m.CommandDurationSeconds,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveRenderCache implements markup.CacheObserver.
func (m *Metrics) ObserveRenderCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RenderCacheTotal.WithLabelValues(result).Inc()
}

// ObserveResolve implements site.ResolveObserver.
func (m *Metrics) ObserveResolve(outcome site.Outcome) {
	m.ResolveTotal.WithLabelValues(string(outcome)).Inc()
}

// ObserveBuild implements generator.BuildObserver.
func (m *Metrics) ObserveBuild(pages int, duration time.Duration, err error) {
	if err != nil {
		m.BuildsTotal.WithLabelValues("error").Inc()
		return
	}
	m.BuildsTotal.WithLabelValues("ok").Inc()
	m.BuildDurationSeconds.Observe(duration.Seconds())
	m.BuildPages.Set(float64(pages))
}

// ObserveCommand records one command outcome.
func (m *Metrics) ObserveCommand(name string, status commands.TelemetryStatus, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(name, string(status)).Inc()
	m.CommandDurationSeconds.WithLabelValues(name).Observe(duration.Seconds())
}

// CommandTelemetry adapts m to the command handler telemetry hook.
func CommandTelemetry[T command.Message](m *Metrics) commands.Telemetry[T] {
	if m == nil {
		return nil
	}
	return func(_ context.Context, msg T, info commands.TelemetryInfo) {
		name := info.Command
		if name == "" {
			name = command.GetMessageType(msg)
		}
		m.ObserveCommand(name, info.Status, info.Duration)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Instrument wraps next so every request is counted under route, which should
// be the registered pattern rather than the raw path. A nil receiver returns
// next unchanged.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
