package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const (
	fileExtension = ".json"
	fileMode      = 0o644
	dirMode       = 0o755
)

type fileDriver struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// NewFileDriver stores one JSON file per slot under dir.
func NewFileDriver(fs afero.Fs, dir string) (Driver, error) {
	if err := fs.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &fileDriver{
		fs:  fs,
		dir: dir,
	}, nil
}

func (d *fileDriver) path(key string) string {
	return filepath.Join(d.dir, strings.ReplaceAll(key, keySeparator, ".")+fileExtension)
}

// Write replaces the slot file through a temp file and rename.
func (d *fileDriver) Write(_ context.Context, key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.path(key)
	tmp := target + ".tmp"

	if err := afero.WriteFile(d.fs, tmp, value, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := d.fs.Rename(tmp, target); err != nil {
		_ = d.fs.Remove(tmp)

		return fmt.Errorf("failed to replace %s: %w", target, err)
	}

	return nil
}

func (d *fileDriver) Read(_ context.Context, key string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := afero.ReadFile(d.fs, d.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}

	return data, nil
}

func (d *fileDriver) Remove(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.fs.Remove(d.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove slot file: %w", err)
	}

	return nil
}
