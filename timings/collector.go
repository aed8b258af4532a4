package timings

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsDesc = prometheus.NewDesc(
		"slamdebug_lap_runs_total",
		"Number of runs recorded per lap.",
		[]string{"lap"}, nil)
	meanDesc = prometheus.NewDesc(
		"slamdebug_lap_mean_seconds",
		"Mean lap duration across runs.",
		[]string{"lap"}, nil)
)

// Collector exposes an aggregator's entries as prometheus metrics.
type Collector struct {
	agg *Aggregator
}

func NewCollector(agg *Aggregator) *Collector {
	return &Collector{agg: agg}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- runsDesc
	ch <- meanDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	entries, err := c.agg.Entries()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(meanDesc, err)
		return
	}
	for _, e := range entries {
		ch <- prometheus.MustNewConstMetric(runsDesc, prometheus.CounterValue, float64(e.Runs), e.Name)
		ch <- prometheus.MustNewConstMetric(meanDesc, prometheus.GaugeValue, e.Mean.Seconds(), e.Name)
	}
}
