// Package fileutil holds file permission constants and output helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for spec output files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirMode is the permission mode for output directories.
const DirMode os.FileMode = 0o755

// WriteFile writes data to path with OwnerReadWrite permissions, refusing to
// follow a symlink at path.
func WriteFile(path string, data []byte) error {
	if err := RejectSymlink(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, OwnerReadWrite)
}

// RejectSymlink returns an error if path exists and is a symlink.
func RejectSymlink(path string) error {
	info, err := os.Lstat(filepath.Clean(path))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("fileutil: creating directory %s: %w", dir, err)
	}
	return nil
}
