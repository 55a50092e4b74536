package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "todoistreadme"
)

// Registry holds the run metrics only, without the process and Go collectors
// of the default registry, so a textfile contains nothing but this run.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	StatValue = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "stats", "value"),
		Help: "Last fetched value of a Todoist stat, absent stats are not exported",
	}, []string{"stat"})
	RegionOutcome = factory.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "render", "region_outcomes_total"),
		Help: "Outcome of rendering each stat into the document",
	}, []string{"tag", "result"})
	UnknownTags = factory.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "render", "unknown_tags"),
		Help: "Number of unrecognized per-stat tags found in the document",
	})
	FetchAttempts = factory.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "fetch", "attempts_total"),
		Help: "Requests made to the Todoist API, by result",
	}, []string{"result"})
	FetchDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "fetch", "duration_seconds"),
		Help:    "Duration of fetching stats including retries in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
	RunOutcome = factory.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "run", "outcomes_total"),
		Help: "Outcome of update runs",
	}, []string{"outcome", "mode"})
	LastRunTimestamp = factory.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "run", "last_timestamp_seconds"),
		Help: "Unix time the last update run finished",
	})
)

// WriteTextfile writes the current metrics to path. It is a no-op when path is empty.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Registry)
}
