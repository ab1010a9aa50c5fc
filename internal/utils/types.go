package util

import "time"

// PageID represents a unique page identifier. A page lives on disk at
// offset PageID * page size.
type PageID uint64

// PageSize is the standard page size (4KB)
const PageSize = 4096

// Options represents database configuration options
type Options struct {
	Path           string
	PageSize       uint64
	BufferPoolSize int
	SyncWrites     bool
	FlushInterval  time.Duration
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		PageSize:       PageSize,
		BufferPoolSize: 1000, // 4MB default buffer pool
		SyncWrites:     false,
		FlushInterval:  30 * time.Second,
	}
}
