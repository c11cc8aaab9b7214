package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "workpark"

	subsystemScheduler = "scheduler"
	subsystemBench     = "bench"
)

// Registry holds every workpark collector. It is separate from the default
// registry so tests can gather it without picking up unrelated collectors.
var Registry = prometheus.NewRegistry()

var (
	parksCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "parks_total",
			Help:      "Count of times a worker found the queue empty and parked.",
		},
	)
	wakeupsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "wakeups_total",
			Help:      "Count of times a parked worker resumed.",
		},
	)
	notifiesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "notifies_total",
			Help:      "Count of notifications issued to parked workers.",
		},
	)
	workCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "work_total",
			Help:      "Count of finished work items by outcome.",
		},
		[]string{"outcome"},
	)
	parkedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "parked_workers",
			Help:      "Number of workers currently parked.",
		},
	)
	queueGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduler,
			Name:      "queue_depth",
			Help:      "Number of work items waiting for a worker.",
		},
	)
	benchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemBench,
			Name:      "duration_seconds",
			Help:      "Duration of stress runs by mode and status.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"mode", "status"},
	)
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeCanceled  = "canceled"
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(parksCounter)
		Registry.MustRegister(wakeupsCounter)
		Registry.MustRegister(notifiesCounter)
		Registry.MustRegister(workCounter)
		Registry.MustRegister(parkedGauge)
		Registry.MustRegister(queueGauge)
		Registry.MustRegister(benchDuration)
		Registry.MustRegister(collectors.NewGoCollector())
	})
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordPark records a worker going to sleep.
func RecordPark() {
	parksCounter.Inc()
	parkedGauge.Inc()
}

// RecordWakeup records a parked worker resuming.
func RecordWakeup() {
	wakeupsCounter.Inc()
	parkedGauge.Dec()
}

func RecordNotify() {
	notifiesCounter.Inc()
}

func RecordWork(outcome string) {
	workCounter.WithLabelValues(outcome).Inc()
}

func SetQueueDepth(n int) {
	queueGauge.Set(float64(n))
}

// RecordBenchDuration records how long a stress run took.
func RecordBenchDuration(mode, status string, seconds float64) {
	benchDuration.WithLabelValues(mode, status).Observe(seconds)
}
