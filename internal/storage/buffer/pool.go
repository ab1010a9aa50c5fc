package buffer

import (
	"fmt"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/disk"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
	"go.uber.org/zap"
)

// BufferPoolManager keeps a bounded working set of pages resident in memory,
// mediating between the replacement policy and the disk manager. It is a
// single-owner object: one goroutine drives it, operations are synchronous.
type BufferPoolManager struct {
	dm     disk.Pager
	pool   PoolAlgorithm
	stats  *Stats
	logger *zap.Logger
}

// NewBufferPoolManager builds a manager with a ClockSweep policy of poolSize
// frames. poolSize must be >= 1. A nil logger is replaced with a no-op one.
func NewBufferPoolManager(dm disk.Pager, poolSize int, logger *zap.Logger) *BufferPoolManager {
	if dm == nil {
		panic("[pool] [NewBufferPoolManager] disk manager is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BufferPoolManager{
		dm:     dm,
		pool:   NewClockSweep(poolSize),
		stats:  NewStats(),
		logger: logger,
	}
}

// NewBufferPoolManagerWith wires an explicit policy instead of the default
// ClockSweep.
func NewBufferPoolManagerWith(dm disk.Pager, pool PoolAlgorithm, logger *zap.Logger) *BufferPoolManager {
	if dm == nil {
		panic("[pool] [NewBufferPoolManagerWith] disk manager is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BufferPoolManager{
		dm:     dm,
		pool:   pool,
		stats:  NewStats(),
		logger: logger,
	}
}

// FetchPage returns a handle to the requested page, reading it from disk on
// a miss and evicting a victim when the pool is at capacity. The caller must
// Release the handle when done with it; until then the page cannot be
// evicted. util.ErrPoolIsFull means every frame is currently held and the
// caller may retry after releasing handles.
func (bpm *BufferPoolManager) FetchPage(pageId util.PageID) (*Frame, error) {
	if frame := bpm.pool.Request(pageId); frame != nil {
		bpm.stats.RecordRequest(true)
		bpm.logger.Debug("page hit", zap.Uint64("page_id", uint64(pageId)))
		return frame, nil
	}
	bpm.stats.RecordRequest(false)

	pageData := make([]byte, bpm.dm.PageSize())
	if _, err := bpm.dm.ReadPage(pageId, pageData); err != nil {
		bpm.stats.RecordIOError()
		bpm.logger.Error("page read failed", zap.Uint64("page_id", uint64(pageId)), zap.Error(err))
		return nil, err
	}
	bpm.stats.RecordRead()

	frame := NewFrame(pageId, pageData)
	poolHandle := frame.Clone()
	evicted, err := bpm.pool.Push(pageId, poolHandle)
	if err != nil {
		// The policy did not retain the handle; the whole fetch unwinds
		// with the pool untouched.
		poolHandle.Release()
		frame.Release()
		bpm.stats.RecordPoolFull()
		bpm.logger.Debug("pool is full", zap.Uint64("page_id", uint64(pageId)))
		return nil, err
	}

	if evicted != nil {
		if err := bpm.writeBack(evicted); err != nil {
			frame.Release()
			return nil, err
		}
		bpm.logger.Debug("page evicted",
			zap.Uint64("victim_page_id", uint64(evicted.PageID)),
			zap.Uint64("page_id", uint64(pageId)),
		)
	}

	return frame, nil
}

// writeBack persists a dirty victim before the fetch that displaced it is
// acknowledged, then destroys the pool's handle.
func (bpm *BufferPoolManager) writeBack(evicted *Eviction) error {
	defer evicted.Frame.Release()

	if !evicted.Frame.IsDirty() {
		bpm.stats.RecordEviction(false)
		return nil
	}

	ref := evicted.Frame.BorrowPage()
	_, err := bpm.dm.WritePage(evicted.PageID, ref.Bytes())
	ref.Release()
	if err != nil {
		bpm.stats.RecordIOError()
		bpm.logger.Error("victim write-back failed",
			zap.Uint64("page_id", uint64(evicted.PageID)), zap.Error(err))
		return fmt.Errorf("write back page %d: %w", evicted.PageID, err)
	}

	bpm.stats.RecordEviction(true)
	return nil
}

// FlushAll writes every dirty resident page to disk and syncs the heap
// file. Dirty flags stay latched until the frame is destroyed on eviction,
// so an evicted page may be rewritten once more, which is harmless.
func (bpm *BufferPoolManager) FlushAll() error {
	var flushErr error
	bpm.pool.Each(func(pageId util.PageID, frame *Frame) bool {
		if !frame.IsDirty() {
			return true
		}
		ref := frame.BorrowPage()
		_, err := bpm.dm.WritePage(pageId, ref.Bytes())
		ref.Release()
		if err != nil {
			flushErr = fmt.Errorf("flush page %d: %w", pageId, err)
			return false
		}
		return true
	})
	if flushErr != nil {
		bpm.stats.RecordIOError()
		return flushErr
	}

	if err := bpm.dm.Sync(); err != nil {
		bpm.stats.RecordIOError()
		return fmt.Errorf("sync after flush: %w", err)
	}
	return nil
}

// Len is the number of resident pages.
func (bpm *BufferPoolManager) Len() int {
	return bpm.pool.Len()
}

func (bpm *BufferPoolManager) Stats() *Stats {
	return bpm.stats
}
