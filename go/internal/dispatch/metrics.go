package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitchside",
		Subsystem: "dispatch",
		Name:      "commands_total",
		Help:      "Commands handled, by operation and outcome kind.",
	}, []string{"op", "outcome"})

	commandDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pitchside",
		Subsystem: "dispatch",
		Name:      "command_duration_seconds",
		Help:      "Command handling duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)

func outcome(resp Response) string {
	if resp.OK {
		return "ok"
	}
	return string(resp.Error.Kind)
}
