package disk

import (
	"errors"
	"fmt"
	"io"
	"os"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* This module reads and writes fixed-size pages from / to a single heap file.
* Offsets are computed as pageId * pageSize; the file is implicitly extended
* by writes, and reads past the end of the file come back zero-filled.
**/
type Manager struct {
	pageSize uint64
	heapFile *os.File
}

// FromFile wraps an already opened heap file.
func FromFile(f *os.File, pageSize uint64) *Manager {
	if pageSize == 0 {
		panic(util.ErrInvalidPageSize)
	}
	return &Manager{
		pageSize: pageSize,
		heapFile: f,
	}
}

func Open(path string, pageSize uint64) (*Manager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open heap file: %w", err)
	}

	return FromFile(f, pageSize), nil
}

func (dm *Manager) PageSize() uint64 {
	return dm.pageSize
}

/* READ FILE */
func (dm *Manager) ReadPage(pageId util.PageID, buf []byte) (int, error) {
	if uint64(len(buf)) != dm.pageSize {
		return 0, util.ErrBufferSizeMissed
	}

	offset := int64(pageId) * int64(dm.pageSize)
	n, err := dm.heapFile.ReadAt(buf, offset)
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Never-written region of the heap file: the missing tail reads
			// as zeroes, same as pread on a hole.
			clear(buf[n:])
			return n, nil
		}
		return n, fmt.Errorf("read page %d: %w", pageId, err)
	}

	return n, nil
}

/* WRITE FILE */
func (dm *Manager) WritePage(pageId util.PageID, buf []byte) (int, error) {
	if uint64(len(buf)) != dm.pageSize {
		return 0, util.ErrBufferSizeMissed
	}

	offset := int64(pageId) * int64(dm.pageSize)
	n, err := dm.heapFile.WriteAt(buf, offset)
	if err != nil {
		return n, fmt.Errorf("write page %d: %w", pageId, err)
	}

	return n, nil
}

// AllocatePage returns the first page id past the current end of the heap
// file. Nothing is written; the file grows when the page is written back.
func (dm *Manager) AllocatePage() (util.PageID, error) {
	info, err := dm.heapFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat heap file: %w", err)
	}

	numPages := (uint64(info.Size()) + dm.pageSize - 1) / dm.pageSize
	return util.PageID(numPages), nil
}

// Sync flushes OS buffers to stable storage.
func (dm *Manager) Sync() error {
	if err := dm.heapFile.Sync(); err != nil {
		return fmt.Errorf("sync heap file: %w", err)
	}
	return nil
}

/**
* CLOSE FUNCTION
**/
func (dm *Manager) Close() error {
	if dm == nil || dm.heapFile == nil {
		return nil // Idempotent
	}

	var err error
	if e := dm.heapFile.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := dm.heapFile.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	dm.heapFile = nil

	return err
}
