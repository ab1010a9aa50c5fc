package buffer

import (
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// Eviction reports the page a policy pushed out to make room. The frame is
// the pool's own handle, transferred to the caller: write it back if dirty,
// then Release it.
type Eviction struct {
	PageID util.PageID
	Frame  *Frame
}

// PoolAlgorithm defines the contract for page replacement policies.
type PoolAlgorithm interface {
	// Request returns one more handle to a resident page and records a use,
	// or nil on a miss. It never touches disk.
	Request(pageId util.PageID) *Frame
	// RequestWithHint is Request for policies that accept placement hints.
	// Policies with no meaningful hint ignore it and delegate to Request.
	RequestWithHint(hint any, pageId util.PageID) *Frame
	// Push inserts a frame for a page that is not resident. It returns
	// (nil, nil) when a free slot absorbed the insert, the eviction it
	// performed otherwise, or util.ErrPoolIsFull when every resident frame
	// is still referenced externally. Pushing a resident page id panics.
	Push(pageId util.PageID, frame *Frame) (*Eviction, error)
	// Len is the number of resident pages.
	Len() int
	// Each visits every resident page until fn returns false.
	Each(fn func(pageId util.PageID, frame *Frame) bool)
}
