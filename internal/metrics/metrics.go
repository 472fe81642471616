package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "teamtasks"

const (
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelResult    = "result"

	ResultOK     = "ok"
	ResultNoop   = "noop"
	ResultFailed = "failed"
)

var Tasks = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name:      "tasks",
		Help:      "Current tasks by status",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var TasksTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      "tasks_total",
		Help:      "Current size of the task collection",
		Namespace: Namespace,
	},
)

var Mutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      "mutations_total",
		Help:      "Task store mutations by operation and result",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelResult},
)

var PersistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:      "persist_duration_seconds",
		Help:      "Time spent writing the task collection to storage",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
)

func ObserveMutation(operation, result string) {
	Mutations.WithLabelValues(operation, result).Inc()
}
