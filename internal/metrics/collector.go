// Package metrics exposes buffer pool statistics to Prometheus.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/buffer"
)

// PoolCollector adapts a pool's Stats to the prometheus.Collector interface.
// Register it on a registry; every scrape reads the live counters.
type PoolCollector struct {
	pool *buffer.BufferPoolManager

	requests   *prometheus.Desc
	hits       *prometheus.Desc
	misses     *prometheus.Desc
	reads      *prometheus.Desc
	writeBacks *prometheus.Desc
	evictions  *prometheus.Desc
	poolFull   *prometheus.Desc
	ioErrors   *prometheus.Desc
	resident   *prometheus.Desc
}

func NewPoolCollector(pool *buffer.BufferPoolManager) *PoolCollector {
	return &PoolCollector{
		pool: pool,
		requests: prometheus.NewDesc("clockdb_pool_page_requests_total",
			"Page fetch requests served by the buffer pool.", nil, nil),
		hits: prometheus.NewDesc("clockdb_pool_page_hits_total",
			"Fetch requests answered from a resident frame.", nil, nil),
		misses: prometheus.NewDesc("clockdb_pool_page_misses_total",
			"Fetch requests that had to go to disk.", nil, nil),
		reads: prometheus.NewDesc("clockdb_pool_page_reads_total",
			"Pages read from the heap file.", nil, nil),
		writeBacks: prometheus.NewDesc("clockdb_pool_page_write_backs_total",
			"Dirty victims written back to the heap file.", nil, nil),
		evictions: prometheus.NewDesc("clockdb_pool_page_evictions_total",
			"Frames evicted by the replacement policy.", nil, nil),
		poolFull: prometheus.NewDesc("clockdb_pool_full_errors_total",
			"Fetches rejected because every frame was pinned.", nil, nil),
		ioErrors: prometheus.NewDesc("clockdb_pool_io_errors_total",
			"I/O failures surfaced through the pool.", nil, nil),
		resident: prometheus.NewDesc("clockdb_pool_resident_frames",
			"Frames currently occupied.", nil, nil),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.hits
	ch <- c.misses
	ch <- c.reads
	ch <- c.writeBacks
	ch <- c.evictions
	ch <- c.poolFull
	ch <- c.ioErrors
	ch <- c.resident
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.pool.Stats()
	counter := func(desc *prometheus.Desc, v *int64) prometheus.Metric {
		return prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(atomic.LoadInt64(v)))
	}

	ch <- counter(c.requests, &stats.PageRequests)
	ch <- counter(c.hits, &stats.PageHits)
	ch <- counter(c.misses, &stats.PageMisses)
	ch <- counter(c.reads, &stats.PageReads)
	ch <- counter(c.writeBacks, &stats.PageWriteBacks)
	ch <- counter(c.evictions, &stats.PageEvictions)
	ch <- counter(c.poolFull, &stats.PoolFullErrors)
	ch <- counter(c.ioErrors, &stats.IOErrors)
	ch <- prometheus.MustNewConstMetric(c.resident, prometheus.GaugeValue, float64(c.pool.Len()))
}
