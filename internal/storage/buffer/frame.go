package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// innerFrame is the record shared between the pool and every caller that
// fetched the page. It is reached only through Frame handles.
type innerFrame struct {
	pageID util.PageID
	page   []byte
	dirty  bool
	refs   int32 // outstanding handles, the pool's own included
	views  int32 // 0 free, >0 shared views, -1 exclusive view
}

// Frame is a cheap, reference-counted handle to an in-memory page frame.
// Handles are duplicated with Clone and must be given back with Release;
// the pool refuses to evict a frame while any caller still holds one.
//
// The pool is single-owner (see BufferPoolManager), so handle bookkeeping
// uses plain counters, not atomics.
type Frame struct {
	inner *innerFrame
}

// NewFrame constructs a fresh frame around page with a single handle and
// the dirty flag cleared.
func NewFrame(pageID util.PageID, page []byte) *Frame {
	return &Frame{
		inner: &innerFrame{
			pageID: pageID,
			page:   page,
			refs:   1,
		},
	}
}

// Clone hands out one more handle to the same underlying frame.
func (f *Frame) Clone() *Frame {
	f.alive("Clone")
	f.inner.refs++
	return &Frame{inner: f.inner}
}

// Release gives the handle back. The handle must not be used afterwards;
// releasing twice is a programmer error and panics.
func (f *Frame) Release() {
	f.alive("Release")
	f.inner.refs--
	f.inner = nil
}

func (f *Frame) PageID() util.PageID {
	f.alive("PageID")
	return f.inner.pageID
}

func (f *Frame) IsDirty() bool {
	f.alive("IsDirty")
	return f.inner.dirty
}

// IsExclusive reports whether this is the only outstanding handle, i.e. no
// caller outside the owner of this handle can observe the frame.
func (f *Frame) IsExclusive() bool {
	f.alive("IsExclusive")
	return f.inner.refs == 1
}

// BorrowPage yields a shared, read-only view of the page bytes. Any number
// of shared views may coexist; taking one while a mutable view is live
// panics. The view must be closed with Release.
func (f *Frame) BorrowPage() *PageRef {
	f.alive("BorrowPage")
	if f.inner.views < 0 {
		panic(fmt.Sprintf("[frame] [BorrowPage] page %d already mutably borrowed", f.inner.pageID))
	}
	f.inner.views++
	return &PageRef{frame: f.inner}
}

// BorrowPageMut yields the exclusive, mutable view of the page bytes and
// marks the frame dirty, unconditionally. Taking it while any other view is
// live panics. The view must be closed with Release.
func (f *Frame) BorrowPageMut() *PageMut {
	f.alive("BorrowPageMut")
	if f.inner.views != 0 {
		panic(fmt.Sprintf("[frame] [BorrowPageMut] page %d has outstanding borrows", f.inner.pageID))
	}
	f.inner.views = -1
	f.inner.dirty = true
	return &PageMut{frame: f.inner}
}

func (f *Frame) alive(op string) {
	if f.inner == nil {
		panic(fmt.Sprintf("[frame] [%s] %v", op, util.ErrFrameReleased))
	}
}

// PageRef is a shared read view obtained from Frame.BorrowPage. Callers must
// not write through Bytes.
type PageRef struct {
	frame *innerFrame
}

func (r *PageRef) Bytes() []byte {
	if r.frame == nil {
		panic("[frame] [PageRef] view already released")
	}
	return r.frame.page
}

func (r *PageRef) Release() {
	if r.frame == nil {
		panic("[frame] [PageRef] view already released")
	}
	r.frame.views--
	r.frame = nil
}

// PageMut is the exclusive write view obtained from Frame.BorrowPageMut.
type PageMut struct {
	frame *innerFrame
}

func (m *PageMut) Bytes() []byte {
	if m.frame == nil {
		panic("[frame] [PageMut] view already released")
	}
	return m.frame.page
}

func (m *PageMut) Release() {
	if m.frame == nil {
		panic("[frame] [PageMut] view already released")
	}
	m.frame.views = 0
	m.frame = nil
}
