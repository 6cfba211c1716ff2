// Package filex contains small file helpers for the vault backends.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	FilePermissions os.FileMode = 0o600
	DirPermissions  os.FileMode = 0o700
)

// EnsureDir creates the parent directory of path if it is missing.
func EnsureDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never see a half-written vault.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir, err := EnsureDir(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), FilePermissions); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// MoveAside renames path to path+suffix, replacing an older copy.
// It returns the new name.
func MoveAside(path, suffix string) (string, error) {
	dst := path + suffix
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	return dst, nil
}
