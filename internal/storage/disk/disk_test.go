package disk

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func openTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path, cleanup := util.CreateTempFile(t)
	t.Cleanup(cleanup)

	dm, err := Open(path, util.PageSize)
	require.NoError(t, err, "open disk manager")
	t.Cleanup(func() { dm.Close() })
	return dm, path
}

func TestOpen(t *testing.T) {
	t.Run("CreatesFile", func(t *testing.T) {
		dm, path := openTestManager(t)
		assert.Equal(t, uint64(util.PageSize), dm.PageSize(), "page size")

		_, err := os.Stat(path)
		assert.NoError(t, err, "heap file created")
	})

	t.Run("ZeroPageSizePanics", func(t *testing.T) {
		assert.Panics(t, func() { FromFile(nil, 0) }, "page size 0 rejected")
	})

	t.Run("BadPath", func(t *testing.T) {
		_, err := Open("/definitely/not/a/dir/heap.dat", util.PageSize)
		assert.Error(t, err, "open fails")
	})
}

func TestReadWritePage(t *testing.T) {
	dm, path := openTestManager(t)

	t.Run("RoundTripAtOffset", func(t *testing.T) {
		payload := bytes.Repeat([]byte{0xCD}, util.PageSize)
		n, err := dm.WritePage(3, payload)
		require.NoError(t, err, "write page 3")
		assert.Equal(t, util.PageSize, n, "full page written")

		buf := make([]byte, util.PageSize)
		n, err = dm.ReadPage(3, buf)
		require.NoError(t, err, "read page 3")
		assert.Equal(t, util.PageSize, n, "full page read")
		assert.Equal(t, payload, buf, "round trip")

		// Offset is pageId * pageSize in the raw file.
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 4*util.PageSize, len(raw), "file extended by the write")
		assert.Equal(t, payload, raw[3*util.PageSize:], "payload at offset 3*PageSize")
	})

	t.Run("NeverWrittenPageReadsZero", func(t *testing.T) {
		buf := bytes.Repeat([]byte{0xFF}, util.PageSize)
		_, err := dm.ReadPage(100, buf)
		require.NoError(t, err, "read past EOF succeeds")
		assert.Equal(t, make([]byte, util.PageSize), buf, "zero-filled")
	})

	t.Run("GapBetweenWritesReadsZero", func(t *testing.T) {
		// Page 3 was written above, pages 0..2 are a hole.
		buf := bytes.Repeat([]byte{0xFF}, util.PageSize)
		_, err := dm.ReadPage(1, buf)
		require.NoError(t, err, "read hole")
		assert.Equal(t, make([]byte, util.PageSize), buf, "hole reads zero")
	})

	t.Run("BufferLengthValidated", func(t *testing.T) {
		short := make([]byte, util.PageSize-1)
		_, err := dm.ReadPage(0, short)
		assert.ErrorIs(t, err, util.ErrBufferSizeMissed, "short read buffer")

		_, err = dm.WritePage(0, short)
		assert.ErrorIs(t, err, util.ErrBufferSizeMissed, "short write buffer")
	})
}

func TestAllocatePage(t *testing.T) {
	dm, _ := openTestManager(t)

	id, err := dm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, util.PageID(0), id, "empty file allocates page 0")

	_, err = dm.WritePage(0, make([]byte, util.PageSize))
	require.NoError(t, err)

	id, err = dm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, util.PageID(1), id, "next page after the written one")

	_, err = dm.WritePage(5, make([]byte, util.PageSize))
	require.NoError(t, err)

	id, err = dm.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, util.PageID(6), id, "allocation follows the file end")
}

func TestSyncAndClose(t *testing.T) {
	path, cleanup := util.CreateTempFile(t)
	defer cleanup()
	dm, err := Open(path, util.PageSize)
	require.NoError(t, err)

	_, err = dm.WritePage(0, make([]byte, util.PageSize))
	require.NoError(t, err)
	assert.NoError(t, dm.Sync(), "sync")

	assert.NoError(t, dm.Close(), "close")
	assert.NoError(t, dm.Close(), "close is idempotent")
}
