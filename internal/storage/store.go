// ABOUTME: SnapshotStore persists the full workout collection under one key.
// ABOUTME: Saves replace the snapshot wholesale; loads never fail.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/harperreed/maplog/internal/models"
)

// SnapshotKey is the key the workout collection is stored under.
const SnapshotKey = "workouts"

// SnapshotStore reads and writes the workout snapshot through a Backend.
type SnapshotStore struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// Option configures a SnapshotStore.
type Option func(*SnapshotStore)

// WithKey overrides the snapshot key.
func WithKey(key string) Option {
	return func(s *SnapshotStore) { s.key = key }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *SnapshotStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSnapshotStore wraps backend.
func NewSnapshotStore(backend Backend, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		backend: backend,
		key:     SnapshotKey,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save replaces the stored snapshot with the given collection.
func (s *SnapshotStore) Save(workouts []*models.Workout) error {
	data, err := Encode(workouts)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.backend.Put(s.key, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debug("snapshot saved", "key", s.key, "workouts", len(workouts))
	return nil
}

// Load returns the stored collection. A missing or unreadable snapshot
// yields an empty collection.
func (s *SnapshotStore) Load() []*models.Workout {
	data, err := s.backend.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("no snapshot", "key", s.key)
		return []*models.Workout{}
	}
	if err != nil {
		s.logger.Warn("snapshot unreadable", "key", s.key, "error", err)
		return []*models.Workout{}
	}

	workouts, skipped, err := Decode(data)
	if err != nil {
		s.logger.Warn("snapshot corrupt", "key", s.key, "error", err)
		return []*models.Workout{}
	}
	if skipped > 0 {
		s.logger.Warn("skipped snapshot records", "key", s.key, "skipped", skipped)
	}
	s.logger.Debug("snapshot loaded", "key", s.key, "workouts", len(workouts))
	return workouts
}

// Clear removes the stored snapshot.
func (s *SnapshotStore) Clear() error {
	if err := s.backend.Delete(s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	s.logger.Debug("snapshot cleared", "key", s.key)
	return nil
}

// Close closes the underlying backend.
func (s *SnapshotStore) Close() error {
	return s.backend.Close()
}
