// Package shm provides helpers for dealing with shared memory.
package shm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// Create creates an anonymous shared memory file of the given size.
// It prefers memfd_create and falls back to an unlinked file in
// /dev/shm on kernels that lack it.
func Create(size int64) (*os.File, error) {
	file, err := createMemfd()
	if err != nil {
		file, err = createDevShm()
		if err != nil {
			return nil, err
		}
	}

	err = file.Truncate(size)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("truncate: %w", err)
	}
	return file, nil
}

func createMemfd() (*os.File, error) {
	fd, err := unix.MemfdCreate("wlui-shm", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}
	return os.NewFile(uintptr(fd), "wlui-shm"), nil
}

func createDevShm() (*os.File, error) {
	path := "/dev/shm/wlui-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	err = os.Remove(path)
	if err != nil {
		return nil, errors.Join(err, file.Close())
	}
	return file, nil
}

type Mmap []byte

// Map maps size bytes of file into memory as shared.
func Map(file *os.File, size int, prot int) (mmap Mmap, err error) {
	sc, err := file.SyscallConn()
	if err != nil {
		return nil, err
	}

	cerr := sc.Control(func(fd uintptr) {
		m, merr := unix.Mmap(int(fd), 0, size, prot, unix.MAP_SHARED)
		mmap, err = Mmap(m), merr
	})
	if cerr != nil {
		return nil, cerr
	}

	return mmap, err
}

func (mmap Mmap) Unmap() error {
	return unix.Munmap(mmap)
}
