// The package metrics exports Prometheus collectors of the simulated walks.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vertex-lab/sawsim/pkg/models"
)

// Collector counts the attempted and accepted walks and the distribution of
// their lengths. It implements models.Observer.
type Collector struct {
	registry *prometheus.Registry

	attempted *prometheus.CounterVec
	accepted  *prometheus.CounterVec
	lengths   *prometheus.HistogramVec
}

// NewCollector() returns a Collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		attempted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sawsim_walks_attempted_total",
				Help: "Total number of walks grown, accepted or not.",
			},
			[]string{"walk_type", "worker"},
		),

		accepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sawsim_walks_accepted_total",
				Help: "Total number of accepted walks.",
			},
			[]string{"walk_type", "worker"},
		),

		lengths: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sawsim_walk_length",
				Help:    "Number of positions of the grown walks.",
				Buckets: prometheus.ExponentialBuckets(2, 2, 12),
			},
			[]string{"walk_type"},
		),
	}

	c.registry.MustRegister(c.attempted, c.accepted, c.lengths)
	return c
}

// ObserveAttempt() updates the collectors with the outcome of the attempt.
func (c *Collector) ObserveAttempt(attempt models.Attempt) {
	walkType := attempt.WalkType.String()
	worker := strconv.Itoa(attempt.Worker)

	c.attempted.WithLabelValues(walkType, worker).Inc()
	if attempt.Accepted {
		c.accepted.WithLabelValues(walkType, worker).Inc()
	}
	c.lengths.WithLabelValues(walkType).Observe(float64(attempt.Length))
}

// Registry() returns the registry the collectors are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler() returns the http.Handler exposing the metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve() exposes the metrics on addr at /metrics until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
