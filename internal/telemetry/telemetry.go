package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/gaugesim/internal/experiment"
)

const namespace = "gaugesim"

// Observer exports step timings and the latest metric values. Each Observer
// owns its registry, so several runs in one process do not collide.
type Observer struct {
	registry     *prometheus.Registry
	steps        prometheus.Counter
	stepDuration prometheus.Histogram
	simTime      prometheus.Gauge
	values       *prometheus.GaugeVec
}

var _ experiment.Observer = (*Observer)(nil)

func New(run string) *Observer {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"run": run}

	return &Observer{
		registry: reg,
		steps: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "steps_total",
			Help:        "Completed simulation steps.",
			ConstLabels: labels,
		}),
		stepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "step_duration_seconds",
			Help:        "Wall time of one step including deposition and metrics.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-4, 4, 10),
		}),
		simTime: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "simulation_time",
			Help:        "Simulation time in lattice units.",
			ConstLabels: labels,
		}),
		values: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "metric_value",
			Help:        "Latest value of each recorded run metric.",
			ConstLabels: labels,
		}, []string{"metric"}),
	}
}

func (o *Observer) OnStep(info experiment.StepInfo) {
	if info.Step > 0 {
		o.steps.Inc()
		o.stepDuration.Observe(info.Elapsed.Seconds())
	}
	o.simTime.Set(info.Time)
	for name, v := range info.Metrics {
		o.values.WithLabelValues(name).Set(v)
	}
}

func (o *Observer) Registry() *prometheus.Registry { return o.registry }

func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{Registry: o.registry})
}

// Serve exposes h on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
