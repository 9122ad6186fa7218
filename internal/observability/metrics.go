package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Summary outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeAuth  = "auth_error"
	OutcomeFetch = "fetch_error"
)

var (
	summaryRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streakboard",
		Subsystem: "summary",
		Name:      "requests_total",
		Help:      "Summary computations by outcome.",
	}, []string{"outcome"})
	workoutsFetched = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "streakboard",
		Subsystem: "peloton",
		Name:      "workouts_fetched_per_summary",
		Help:      "Workout records fetched before the pagination loop stopped.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 8),
	})
)

func init() {
	prometheus.MustRegister(summaryRequests, workoutsFetched)
}

// RecordSummary counts one summary computation with the given outcome.
func RecordSummary(outcome string) {
	summaryRequests.WithLabelValues(outcome).Inc()
}

// RecordWorkoutsFetched observes how many records a summary pulled before
// the early-exit fired.
func RecordWorkoutsFetched(n int) {
	workoutsFetched.Observe(float64(n))
}
