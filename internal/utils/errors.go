package util

import "errors"

var (
	ErrInvalidPageSize   = errors.New("invalid page size")
	ErrInvalidPoolSize   = errors.New("invalid pool size")
	ErrBufferSizeMissed  = errors.New("buffer length does not match page size")
	ErrPoolIsFull        = errors.New("pool is full")
	ErrPageAlreadyCached = errors.New("page id already resident in pool")
	ErrFrameReleased     = errors.New("frame handle already released")
)
