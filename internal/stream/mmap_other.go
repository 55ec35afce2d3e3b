//go:build !unix

package stream

import (
	"os"

	"github.com/pkg/errors"
)

// mmapFile reads path into memory on platforms without mmap support. The
// release function is a no-op beyond dropping the data.
func mmapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening source")
	}
	return data, func() {}, nil
}
