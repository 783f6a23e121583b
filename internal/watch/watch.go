package watch

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow is the coalescing window: changes observed
// within this window of the last seen change collapse into one reload
// attempt.
const DebounceWindow = 100 * time.Millisecond

// FileWatcher watches a single file's parent directory and delivers one
// debounced signal per burst of changes on Events. A failed Start leaves
// Events unusable; the caller degrades to "hot-reload disabled" rather
// than treating this as fatal.
type FileWatcher struct {
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	path    string
	Events  chan struct{}
	done    chan struct{}
	running bool
}

// New creates a FileWatcher for the given file path. The file need not
// exist yet; its parent directory must.
func New(path string, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		logger:  logger,
		watcher: w,
		path:    path,
		Events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the file's parent directory for changes.
func (fw *FileWatcher) Start() error {
	if fw.running {
		return nil
	}
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}
	fw.running = true
	go fw.run()
	return nil
}

// Stop stops watching and releases the underlying inotify/kqueue handle.
func (fw *FileWatcher) Stop() error {
	if !fw.running {
		return nil
	}
	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	filename := filepath.Base(fw.path)
	var pending *time.Timer

	fire := func() {
		select {
		case fw.Events <- struct{}{}:
		default:
			// A reload is already queued; the next loop pass will pick up
			// whatever is on disk by then, so dropping this one is safe.
		}
	}

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(DebounceWindow, fire)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("config file watcher error", "error", err)

		case <-fw.done:
			if pending != nil {
				pending.Stop()
			}
			return
		}
	}
}
