// ABOUTME: Prometheus metrics for remote requests and playback
// ABOUTME: Registers collectors with promauto and serves them over HTTP
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the assistant
type Metrics struct {
	// Remote request metrics
	Requests        *prometheus.CounterVec
	RequestFailures *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Image metrics
	ImagesSaved prometheus.Counter
	ImageBytes  prometheus.Histogram

	// Audio metrics
	DecodeErrors     prometheus.Counter
	PlaybacksStarted prometheus.Counter
	PlaybacksDone    *prometheus.CounterVec
	AudioDuration    prometheus.Histogram
	ActivePlaybacks  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all metrics and registers them with reg. A nil reg uses a
// fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mindspark_requests_total",
			Help: "Total number of remote model requests",
		}, []string{"op"}),
		RequestFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mindspark_request_failures_total",
			Help: "Total number of failed remote model requests",
		}, []string{"op"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindspark_request_duration_seconds",
			Help:    "Latency of remote model requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		}, []string{"op"}),

		ImagesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "mindspark_images_saved_total",
			Help: "Total number of generated images saved to the gallery",
		}),
		ImageBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindspark_image_size_bytes",
			Help:    "Size of generated images",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KB to ~8MB
		}),

		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "mindspark_audio_decode_errors_total",
			Help: "Total number of speech payloads that failed to decode",
		}),
		PlaybacksStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "mindspark_playbacks_started_total",
			Help: "Total number of playbacks started",
		}),
		PlaybacksDone: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mindspark_playbacks_finished_total",
			Help: "Total number of playbacks finished, by outcome",
		}, []string{"outcome"}),
		AudioDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindspark_audio_duration_seconds",
			Help:    "Duration of synthesized audio",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s to ~1 minute
		}),
		ActivePlaybacks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mindspark_active_playbacks",
			Help: "Current number of playbacks in progress",
		}),

		gatherer: reg,
	}
}

// ObserveRequest records the outcome of one remote call
func (m *Metrics) ObserveRequest(op string, duration time.Duration, err error) {
	m.Requests.WithLabelValues(op).Inc()
	m.RequestDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.RequestFailures.WithLabelValues(op).Inc()
	}
}

// ObserveImage records a saved image
func (m *Metrics) ObserveImage(size int) {
	m.ImagesSaved.Inc()
	m.ImageBytes.Observe(float64(size))
}

// ObserveDecodeError records a speech payload that failed to decode
func (m *Metrics) ObserveDecodeError() {
	m.DecodeErrors.Inc()
}

// PlaybackStarted records the start of a playback of the given length
func (m *Metrics) PlaybackStarted(duration time.Duration) {
	m.PlaybacksStarted.Inc()
	m.ActivePlaybacks.Inc()
	m.AudioDuration.Observe(duration.Seconds())
}

// PlaybackFinished records how a playback ended
func (m *Metrics) PlaybackFinished(err error) {
	m.ActivePlaybacks.Dec()
	outcome := "completed"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "cancelled"
	case err != nil:
		outcome = "failed"
	}
	m.PlaybacksDone.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler exposing the metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Server exposes /metrics over HTTP
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// Serve starts an HTTP server for the metrics on addr
func (m *Metrics) Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	s := &Server{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: ln,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	log.Printf("Metrics listening on %s", ln.Addr())
	return s, nil
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
