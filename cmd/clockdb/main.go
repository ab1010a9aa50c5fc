package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/clock-db/internal/metrics"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/disk"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	dir, err := os.MkdirTemp("", "clockdb-demo")
	if err != nil {
		logger.Fatal("mkdir temp", zap.Error(err))
	}
	defer os.RemoveAll(dir)

	opts := util.DefaultOptions()
	opts.Path = filepath.Join(dir, "heap.dat")
	opts.BufferPoolSize = 3

	dm, err := disk.Open(opts.Path, opts.PageSize)
	if err != nil {
		logger.Fatal("open disk manager", zap.Error(err))
	}
	defer dm.Close()

	bpm := buffer.NewBufferPoolManager(dm, opts.BufferPoolSize, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewPoolCollector(bpm))

	// Write a recognizable payload into more pages than the pool holds, so
	// the clock sweep has to evict and write back dirty victims.
	for id := util.PageID(0); id < 6; id++ {
		frame, err := bpm.FetchPage(id)
		if err != nil {
			logger.Fatal("fetch page", zap.Uint64("page_id", uint64(id)), zap.Error(err))
		}

		mut := frame.BorrowPageMut()
		copy(mut.Bytes(), fmt.Appendf(nil, "page %d payload", id))
		mut.Release()
		frame.Release()
	}

	if err := bpm.FlushAll(); err != nil {
		logger.Fatal("flush", zap.Error(err))
	}

	// Read everything back; early pages were evicted and come from disk.
	for id := util.PageID(0); id < 6; id++ {
		frame, err := bpm.FetchPage(id)
		if err != nil {
			logger.Fatal("refetch page", zap.Uint64("page_id", uint64(id)), zap.Error(err))
		}

		ref := frame.BorrowPage()
		fmt.Printf("page %d: %q\n", id, ref.Bytes()[:14])
		ref.Release()
		frame.Release()
	}

	families, err := registry.Gather()
	if err != nil {
		logger.Fatal("gather metrics", zap.Error(err))
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue() + m.GetGauge().GetValue()
			fmt.Printf("%s = %.0f\n", mf.GetName(), value)
		}
	}
	fmt.Printf("hit ratio: %.2f\n", bpm.Stats().HitRatio())
}
