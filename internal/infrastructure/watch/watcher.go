package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/felixgeelhaar/courtside/pkg/storage"
)

// watchedFiles are the workspace data files whose edits should kick off a
// new sync round. Editor temp files and lock files in the same directory
// are ignored.
var watchedFiles = map[string]bool{
	storage.TasksFile:   true,
	storage.BoardFile:   true,
	storage.StateFile:   true,
	storage.PluginsFile: true,
}

// DataWatcher watches the workspace data directory and invokes onChange
// once per debounced burst of edits to the data files.
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	dataDir  string
	debounce time.Duration
	onChange func(file string)
}

func NewDataWatcher(dataDir string, debounce time.Duration, onChange func(file string)) (*DataWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &DataWatcher{
		watcher:  w,
		dataDir:  dataDir,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run watches the data directory until the context is cancelled.
func (w *DataWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dataDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dataDir, err)
	}

	var lastFile string
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastFile)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !watchedFiles[name] {
				continue
			}
			lastFile = name
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
