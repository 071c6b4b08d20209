package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the renderer and control metrics. A nil *Collector is
// valid and records nothing, so callers never have to check.
type Collector struct {
	registry *prometheus.Registry

	framesTotal      prometheus.Counter
	frameDuration    prometheus.Histogram
	drawCalls        prometheus.Gauge
	skippedDraws     *prometheus.CounterVec
	selectionChanges *prometheus.CounterVec
	setupFailures    *prometheus.CounterVec
	controlClients   prometheus.Gauge
	rejectedCommands prometheus.Counter
}

// NewCollector registers every metric on a private registry
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Frames drawn",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_duration_seconds",
			Help:    "Time spent building and submitting a frame",
			Buckets: []float64{.001, .002, .004, .008, .016, .033, .066, .1},
		}),
		drawCalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_draw_calls",
			Help: "Draw calls submitted in the last frame",
		}),
		skippedDraws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_skipped_draws_total",
				Help: "Draw calls dropped because their drawable failed to initialise",
			},
			[]string{"kind"},
		),
		selectionChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_selection_changes_total",
				Help: "Selection moves by direction and origin",
			},
			[]string{"direction", "source"},
		),
		setupFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_setup_failures_total",
				Help: "Shader, texture and mesh setup failures",
			},
			[]string{"component"},
		),
		controlClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_control_clients",
			Help: "Connected selection control clients",
		}),
		rejectedCommands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_control_rejected_total",
			Help: "Control commands rejected by the rate limiter or as malformed",
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.frameDuration,
		m.drawCalls,
		m.skippedDraws,
		m.selectionChanges,
		m.setupFailures,
		m.controlClients,
		m.rejectedCommands,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Collector) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Collector) RecordFrame(d time.Duration, draws int) {
	if m == nil {
		return
	}
	m.framesTotal.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.drawCalls.Set(float64(draws))
}

func (m *Collector) RecordSkippedDraw(kind string) {
	if m == nil {
		return
	}
	m.skippedDraws.WithLabelValues(kind).Inc()
}

// RecordSelection counts a selection move; direction is next, previous or set
func (m *Collector) RecordSelection(direction, source string) {
	if m == nil {
		return
	}
	m.selectionChanges.WithLabelValues(direction, source).Inc()
}

// RecordSetupFailure counts a failed shader, texture or mesh
func (m *Collector) RecordSetupFailure(component string) {
	if m == nil {
		return
	}
	m.setupFailures.WithLabelValues(component).Inc()
}

func (m *Collector) ClientConnected() {
	if m == nil {
		return
	}
	m.controlClients.Inc()
}

func (m *Collector) ClientDisconnected() {
	if m == nil {
		return
	}
	m.controlClients.Dec()
}

func (m *Collector) RecordRejected() {
	if m == nil {
		return
	}
	m.rejectedCommands.Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Collector) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
