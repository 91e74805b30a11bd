package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Preallocate sizes f to exactly size bytes. Where the platform supports it
// the range is reserved on disk up front; otherwise the file is truncated,
// leaving a sparse region. Every byte not later written reads as zero.
func Preallocate(f *os.File, size int64) error {
	if size < 0 {
		return fmt.Errorf("preallocate %s: negative size %d", f.Name(), size)
	}
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("reset %s: %w", f.Name(), err)
	}
	if size > 0 {
		if err := reserve(f, size); err != nil && !errors.Is(err, errReserveUnsupported) {
			return fmt.Errorf("reserve %s: %w", f.Name(), err)
		}
	}
	if err := f.Truncate(size); err != nil {
		return fmt.Errorf("truncate %s: %w", f.Name(), err)
	}
	return nil
}

var errReserveUnsupported = errors.New("preallocation unsupported")

// RemoveIfExists deletes path, treating a missing file as success.
func RemoveIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
