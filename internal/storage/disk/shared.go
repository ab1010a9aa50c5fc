package disk

import (
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// Pager is the surface the buffer pool consumes.
type Pager interface {
	PageSize() uint64
	ReadPage(pageId util.PageID, buf []byte) (int, error)
	WritePage(pageId util.PageID, buf []byte) (int, error)
	Sync() error
}
