package buffer

import (
	"sync/atomic"
	"time"
)

// Stats counts what the pool has been doing. Counters are atomic so that a
// metrics scraper can read them while the owning goroutine drives the pool.
type Stats struct {
	// Hit rate
	PageRequests int64
	PageHits     int64
	PageMisses   int64

	// IO
	PageReads      int64
	PageWriteBacks int64
	PageEvictions  int64

	// Failures
	PoolFullErrors int64
	IOErrors       int64

	LastResetTime time.Time
}

func NewStats() *Stats {
	return &Stats{
		LastResetTime: time.Now(),
	}
}

func (s *Stats) RecordRequest(hit bool) {
	atomic.AddInt64(&s.PageRequests, 1)
	if hit {
		atomic.AddInt64(&s.PageHits, 1)
	} else {
		atomic.AddInt64(&s.PageMisses, 1)
	}
}

func (s *Stats) RecordRead() {
	atomic.AddInt64(&s.PageReads, 1)
}

func (s *Stats) RecordEviction(dirty bool) {
	atomic.AddInt64(&s.PageEvictions, 1)
	if dirty {
		atomic.AddInt64(&s.PageWriteBacks, 1)
	}
}

func (s *Stats) RecordPoolFull() {
	atomic.AddInt64(&s.PoolFullErrors, 1)
}

func (s *Stats) RecordIOError() {
	atomic.AddInt64(&s.IOErrors, 1)
}

// HitRatio returns hits / requests, or 0 before the first request.
func (s *Stats) HitRatio() float64 {
	requests := atomic.LoadInt64(&s.PageRequests)
	if requests == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.PageHits)) / float64(requests)
}

func (s *Stats) Reset() {
	atomic.StoreInt64(&s.PageRequests, 0)
	atomic.StoreInt64(&s.PageHits, 0)
	atomic.StoreInt64(&s.PageMisses, 0)
	atomic.StoreInt64(&s.PageReads, 0)
	atomic.StoreInt64(&s.PageWriteBacks, 0)
	atomic.StoreInt64(&s.PageEvictions, 0)
	atomic.StoreInt64(&s.PoolFullErrors, 0)
	atomic.StoreInt64(&s.IOErrors, 0)
	s.LastResetTime = time.Now()
}
