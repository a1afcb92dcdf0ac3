package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// jsonFile is a JSON array of records stored in one file on an afero
// filesystem. Writes go to a temporary file that is renamed into place.
type jsonFile[T any] struct {
	fs   afero.Fs
	path string
	kind string
}

func (f jsonFile[T]) load() ([]T, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", f.kind, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, NewDBError(fmt.Errorf("%w: %w", ErrCorruptStore, err), f.path)
	}
	return records, nil
}

func (f jsonFile[T]) save(records []T) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create %s file directory: %w", f.kind, err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s records: %w", f.kind, err)
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s file: %w", f.kind, err)
	}
	return f.fs.Rename(tmp, f.path)
}
