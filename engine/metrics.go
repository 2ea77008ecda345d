package engine

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/haunted/world"
)

// Metrics counts frame loop activity in a private registry
//
// Exposed series:
//   - haunted_frames_total
//   - haunted_rays_total, haunted_ray_hits_total
//   - haunted_frame_duration_seconds (histogram)
//   - haunted_cues_total{cue}
type Metrics struct {
	Registry *prometheus.Registry

	frames        prometheus.Counter
	rays          prometheus.Counter
	hits          prometheus.Counter
	frameDuration prometheus.Histogram
	cues          *prometheus.CounterVec
}

// NewMetrics creates and registers every collector
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "haunted",
			Name:      "frames_total",
			Help:      "Frames presented.",
		}),
		rays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "haunted",
			Name:      "rays_total",
			Help:      "Rays marched.",
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "haunted",
			Name:      "ray_hits_total",
			Help:      "Rays that met a wall within range.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "haunted",
			Name:      "frame_duration_seconds",
			Help:      "Time spent updating and drawing one frame.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.0167, 0.025, 0.05, 0.1},
		}),
		cues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "haunted",
			Name:      "cues_total",
			Help:      "Proximity cues fired.",
		}, []string{"cue"}),
	}
	m.Registry.MustRegister(m.frames, m.rays, m.hits, m.frameDuration, m.cues)
	return m
}

// ObserveFrame records one presented frame; nil receivers are no-ops
func (m *Metrics) ObserveFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// ObserveRays records the rays of one frame and how many hit
func (m *Metrics) ObserveRays(cast, hit int) {
	if m == nil {
		return
	}
	m.rays.Add(float64(cast))
	m.hits.Add(float64(hit))
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	Go(func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	})
	Go(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics: %v", err)
		}
	})
}

// CountingSink wraps a cue sink and counts every cue it forwards
type CountingSink struct {
	Sink    world.CueSink
	Metrics *Metrics
}

func (c CountingSink) Play(cue world.Cue) {
	if c.Metrics != nil {
		c.Metrics.cues.WithLabelValues(cue.String()).Inc()
	}
	if c.Sink != nil {
		c.Sink.Play(cue)
	}
}

func (c CountingSink) Busy() bool {
	return c.Sink != nil && c.Sink.Busy()
}
