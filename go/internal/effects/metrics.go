package effects

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Subsystem: "effects",
		Name:      "dispatch_total",
		Help:      "Side effects dispatched, by type and status.",
	}, []string{"type", "status"})

	dispatchDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pitchside",
		Subsystem: "effects",
		Name:      "dispatch_duration_seconds",
		Help:      "Side effect dispatch duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})
)

// MetricDispatcher wraps a Dispatcher with Prometheus instrumentation
type MetricDispatcher struct {
	next Dispatcher
}

func NewMetricDispatcher(next Dispatcher) *MetricDispatcher {
	return &MetricDispatcher{next: next}
}

func (d *MetricDispatcher) Dispatch(ctx context.Context, e Effect) error {
	start := time.Now()
	err := d.next.Dispatch(ctx, e)

	typ := string(e.EffectType())
	dispatchDurationSeconds.WithLabelValues(typ).Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	dispatchTotal.WithLabelValues(typ, status).Inc()
	return err
}
