//go:build unix

package stream

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// mmapFile maps path read-only. The release function unmaps the data and
// closes the file; the data slice must not be used after calling it.
func mmapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening source")
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "stat %s", path)
	}
	size := st.Size()
	if size == 0 {
		return nil, func() { f.Close() }, nil
	}
	if size != int64(int(size)) {
		f.Close()
		return nil, nil, errors.Errorf("%s: too large to map (%d bytes)", path, size)
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "mmap %s", path)
	}
	release := func() {
		_ = syscall.Munmap(data)
		f.Close()
	}
	return data, release, nil
}
