// Package metrics instruments the simulator driver with Prometheus
// collectors registered against a private registry. No HTTP exporter is
// wired here: the core has no transport surface of its own (spec's scope
// excludes HTTP transport as an external collaborator), so a caller that
// wants /metrics must expose this registry itself.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the private collector registry every metric here is
// registered against, mirroring the teacher's observability setup minus
// its promhttp wiring.
var Registry = prometheus.NewRegistry()

var (
	tickDuration = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "battlearena",
		Subsystem: "engine",
		Name:      "tick_duration_seconds",
		Help:      "Wall-clock time spent computing one simulation tick.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14),
	})

	parseErrors = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: "battlearena",
		Subsystem: "script",
		Name:      "parse_errors_total",
		Help:      "Count of scripts that failed to parse.",
	})

	inFlightProjectiles = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "battlearena",
		Subsystem: "engine",
		Name:      "in_flight_projectiles",
		Help:      "Number of projectiles currently in flight in the most recent tick.",
	})

	battlesCompleted = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "battlearena",
		Subsystem: "engine",
		Name:      "battles_completed_total",
		Help:      "Completed battles by terminal status.",
	}, []string{"status"})
)

// TickTimer measures one tick's wall-clock compute time.
type TickTimer struct {
	start time.Time
}

// StartTick begins timing a tick. Call ObserveDone when the tick finishes.
func StartTick() TickTimer {
	return TickTimer{start: time.Now()}
}

// ObserveDone records the elapsed duration since StartTick into the tick
// duration histogram.
func (t TickTimer) ObserveDone() {
	tickDuration.Observe(time.Since(t.start).Seconds())
}

// RecordParseError increments the parse-error counter.
func RecordParseError() {
	parseErrors.Inc()
}

// SetInFlightProjectiles reports the current in-flight projectile count.
func SetInFlightProjectiles(n int) {
	inFlightProjectiles.Set(float64(n))
}

// RecordBattleCompleted increments the completed-battle counter for status
// ("finished" or "draw").
func RecordBattleCompleted(status string) {
	battlesCompleted.WithLabelValues(status).Inc()
}
