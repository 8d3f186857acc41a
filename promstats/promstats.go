// Package promstats exports chash table statistics to Prometheus.
package promstats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theflywheel/chash"
)

// StatsSource is anything that can report table stats. A *chash.Table
// satisfies it; callers sharing a table between goroutines should pass a
// source that takes their lock.
type StatsSource interface {
	Stats() chash.Stats
}

// StatsFunc adapts a function to StatsSource.
type StatsFunc func() chash.Stats

// Stats calls f.
func (f StatsFunc) Stats() chash.Stats { return f() }

// Collector reports the stats of one table on every scrape.
type Collector struct {
	source StatsSource

	size         *prometheus.Desc
	capacity     *prometheus.Desc
	loadFactor   *prometheus.Desc
	resizes      *prometheus.Desc
	longestChain *prometheus.Desc
	emptyBuckets *prometheus.Desc
}

// NewCollector returns a collector for source. name is attached to every
// series as the "table" label.
func NewCollector(name string, source StatsSource) *Collector {
	labels := prometheus.Labels{"table": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("chash", "", metric), help, nil, labels)
	}
	return &Collector{
		source:       source,
		size:         desc("entries", "Number of keys stored"),
		capacity:     desc("buckets", "Length of the bucket array"),
		loadFactor:   desc("load_factor", "Entries divided by buckets"),
		resizes:      desc("resizes_total", "Number of completed resizes"),
		longestChain: desc("longest_chain", "Entries in the fullest bucket"),
		emptyBuckets: desc("empty_buckets", "Buckets holding no entries"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.resizes
	ch <- c.longestChain
	ch <- c.emptyBuckets
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(st.Size))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, st.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(st.Resizes))
	ch <- prometheus.MustNewConstMetric(c.longestChain, prometheus.GaugeValue, float64(st.LongestChain))
	ch <- prometheus.MustNewConstMetric(c.emptyBuckets, prometheus.GaugeValue, float64(st.EmptyBuckets))
}

// ResizeObserver records resize durations and sizes. Set it as
// chash.Config.Observer and register it with a prometheus.Registerer.
type ResizeObserver struct {
	duration *prometheus.HistogramVec
	moved    *prometheus.CounterVec
	table    string
}

// NewResizeObserver returns an observer labelling its series with name.
func NewResizeObserver(name string) *ResizeObserver {
	return &ResizeObserver{
		table: name,
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chash",
			Name:      "resize_duration_milliseconds",
			Help:      "Time spent rehashing into a larger bucket array",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2.0, 20),
		}, []string{"table"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chash",
			Name:      "rehashed_entries_total",
			Help:      "Entries moved by resizes",
		}, []string{"table"}),
	}
}

// Resized implements chash.Observer.
func (o *ResizeObserver) Resized(oldCapacity, newCapacity, size int, took time.Duration) {
	o.duration.WithLabelValues(o.table).Observe(float64(took) / float64(time.Millisecond))
	o.moved.WithLabelValues(o.table).Add(float64(size))
}

// Describe implements prometheus.Collector.
func (o *ResizeObserver) Describe(ch chan<- *prometheus.Desc) {
	o.duration.Describe(ch)
	o.moved.Describe(ch)
}

// Collect implements prometheus.Collector.
func (o *ResizeObserver) Collect(ch chan<- prometheus.Metric) {
	o.duration.Collect(ch)
	o.moved.Collect(ch)
}
