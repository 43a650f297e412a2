package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/courtside/pkg/storage"
)

func TestDataWatcher_DetectsTasksEdit(t *testing.T) {
	dir := t.TempDir()

	tasksPath := filepath.Join(dir, storage.TasksFile)
	if err := os.WriteFile(tasksPath, []byte("tasks: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var eventCount atomic.Int32
	var lastFile atomic.Value

	w, err := NewDataWatcher(dir, 50*time.Millisecond, func(file string) {
		eventCount.Add(1)
		lastFile.Store(file)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(tasksPath, []byte("tasks:\n  - id: \"1\"\n    title: Task\n"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	cancel()

	if eventCount.Load() == 0 {
		t.Fatal("expected at least one change event")
	}
	if got := lastFile.Load(); got != storage.TasksFile {
		t.Errorf("expected change for %s, got %v", storage.TasksFile, got)
	}
}

func TestDataWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	var eventCount atomic.Int32
	w, err := NewDataWatcher(dir, 50*time.Millisecond, func(file string) {
		eventCount.Add(1)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("noise"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	cancel()

	if got := eventCount.Load(); got != 0 {
		t.Errorf("expected 0 events for unrelated file, got %d", got)
	}
}

func TestDataWatcher_ContextCancellation(t *testing.T) {
	dir := t.TempDir()

	w, err := NewDataWatcher(dir, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after context cancellation")
	}
}
