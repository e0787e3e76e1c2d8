// ABOUTME: Snapshot migration between storage backends.
// ABOUTME: Copies the workout snapshot from a source backend to a destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts int
	Bytes    int
}

// MigrateData copies the snapshot under key from src to dst. The destination
// snapshot is replaced. A missing source snapshot migrates nothing.
func MigrateData(src, dst Backend, key string) (*MigrateSummary, error) {
	data, err := src.Get(key)
	if errors.Is(err, ErrNotFound) {
		return &MigrateSummary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read source snapshot: %w", err)
	}

	workouts, skipped, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode source snapshot: %w", err)
	}
	if skipped > 0 {
		return nil, fmt.Errorf("source snapshot has %d unreadable records", skipped)
	}

	if err := dst.Put(key, data); err != nil {
		return nil, fmt.Errorf("write destination snapshot: %w", err)
	}

	return &MigrateSummary{Workouts: len(workouts), Bytes: len(data)}, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
