// ABOUTME: Tests for snapshot migration between backends.
// ABOUTME: Covers copying, empty sources, corrupt sources, and IsDirNonEmpty.
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	dst, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	want := sampleWorkouts()
	if err := NewSnapshotStore(src).Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	summary, err := MigrateData(src, dst, SnapshotKey)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 2 {
		t.Errorf("Workouts = %d, want 2", summary.Workouts)
	}
	if summary.Bytes == 0 {
		t.Error("expected Bytes to be counted")
	}

	assertSameWorkouts(t, want, NewSnapshotStore(dst).Load())
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(NewMemoryStore(), NewMemoryStore(), SnapshotKey)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 0 {
		t.Errorf("Workouts = %d, want 0", summary.Workouts)
	}
}

func TestMigrateDataRefusesCorruptSource(t *testing.T) {
	src := NewMemoryStore()
	_ = src.Put(SnapshotKey, []byte(`{broken`))
	dst := NewMemoryStore()

	if _, err := MigrateData(src, dst, SnapshotKey); err == nil {
		t.Fatal("expected error for corrupt source")
	}
	if _, err := dst.Get(SnapshotKey); err == nil {
		t.Error("destination should be untouched")
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	got, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || got {
		t.Errorf("missing dir: got %v, %v", got, err)
	}

	got, err = IsDirNonEmpty(dir)
	if err != nil || got {
		t.Errorf("empty dir: got %v, %v", got, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err = IsDirNonEmpty(dir)
	if err != nil || !got {
		t.Errorf("non-empty dir: got %v, %v", got, err)
	}
}
