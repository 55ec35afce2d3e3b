package stream

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Open opens path as a buffered Stream. Files ending in ".gz" or ".lz4"
// are decompressed transparently. The returned Stream owns the file handle
// and must be closed.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}
	var r io.Reader = f
	closers := []io.Closer{f}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "opening gzip source %s", path)
		}
		r = zr
		closers = []io.Closer{zr, f}
	case strings.HasSuffix(path, ".lz4"):
		r = lz4.NewReader(f)
	}
	s := &Stream{r: r, scratch: make([]byte, defaultBufSize), line: 1, col: 1, closers: closers}
	s.skipBOM()
	return s, nil
}

// OpenMmap maps path read-only into memory and serves it as an in-memory
// Stream. On platforms without mmap support the file is read into memory
// instead. Compressed files are not supported; use Open. The returned
// Stream must be closed to release the mapping.
func OpenMmap(path string) (*Stream, error) {
	data, release, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	s := New(data)
	s.release = release
	return s, nil
}
