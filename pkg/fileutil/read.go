package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// DefaultMaxFileSize is the read limit used when none is configured (1MB).
const DefaultMaxFileSize int64 = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadFileWithLimit reads a file of at most limit bytes. A limit <= 0 uses
// DefaultMaxFileSize.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, tooLarge(limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, tooLarge(limit)
	}

	return data, nil
}

func tooLarge(limit int64) error {
	return errors.Wrapf(ErrFileTooLarge, "exceeds maximum size of %d bytes", limit)
}
