package platform

import (
	"os"
	"runtime"

	"go.uber.org/multierr"
)

// Chmod sets permission bits. It is a no-op on Windows, which has no
// Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// WithWritable calls fn with the owner write bit set on path and puts the
// original bits back afterwards. fn receives the original bits.
func WithWritable(path string, fn func(mode os.FileMode) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode&0200 != 0 {
		return fn(mode)
	}

	if err := Chmod(path, mode|0200); err != nil {
		return err
	}
	return multierr.Append(fn(mode), Chmod(path, mode))
}
