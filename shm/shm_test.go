package shm

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestCreateMap(t *testing.T) {
	file, err := Create(4096)
	require.NoError(t, err)
	defer file.Close()

	info, err := file.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(4096), info.Size())

	mmap, err := Map(file, 4096, unix.PROT_READ|unix.PROT_WRITE)
	require.NoError(t, err)
	copy(mmap, "cursor")
	require.NoError(t, mmap.Unmap())

	buf := make([]byte, 6)
	_, err = io.ReadFull(io.NewSectionReader(file, 0, 6), buf)
	require.NoError(t, err)
	assert.Equal(t, "cursor", string(buf))
}
