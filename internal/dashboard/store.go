package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/mission-control/internal/fileutil"
)

// DebounceWindow is how long the watcher waits after the last file event
// before reloading.
const DebounceWindow = 250 * time.Millisecond

// Store holds the current dataset. Readers get an immutable snapshot;
// Reload swaps in a new one.
type Store struct {
	mu      sync.RWMutex
	current *Dataset

	fsys   fs.FS
	dir    string // empty when serving the bundled dataset
	logger *slog.Logger
}

// NewStore loads the dataset from dir, or from the bundled defaults when
// dir is empty.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{dir: dir, logger: logger}
	if dir == "" {
		s.fsys = DefaultFS()
	} else {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: not a directory: %s", ErrMissingData, dir)
		}
		s.fsys = os.DirFS(dir)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreFS loads the dataset from an arbitrary filesystem. The store
// cannot be watched.
func NewStoreFS(fsys fs.FS, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{fsys: fsys, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current dataset. Callers must not modify it.
func (s *Store) Snapshot() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload reads the data files again. On error the previous snapshot stays
// in place.
func (s *Store) Reload() error {
	ds, err := LoadDataset(s.fsys)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	s.logger.Debug("dataset loaded",
		"activities", len(ds.Activities),
		"recurring", len(ds.Schedule.Recurring),
		"one_time", len(ds.Schedule.OneTime),
		"claims", len(ds.Claims),
		"explainers", len(ds.Explainers))
	return nil
}

// Dir returns the watched data directory, empty for the bundled dataset.
func (s *Store) Dir() string {
	return s.dir
}

// Watch reloads the dataset whenever a file in the data directory or its
// explainers subdirectory changes. Bursts of events within DebounceWindow
// cause one reload. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return ErrWatchUnavailable
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}
	explainersDir := filepath.Join(s.dir, ExplainersDir)
	if fileutil.DirExists(explainersDir) {
		if err := w.Add(explainersDir); err != nil {
			s.logger.Warn("cannot watch explainers", "dir", explainersDir, "error", err)
		}
	}

	s.logger.Info("watching data directory", "dir", s.dir)
	return s.watchLoop(ctx, w.Events, w.Errors)
}

// watchLoop debounces events into reloads.
func (s *Store) watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceWindow, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			s.reloadLogged()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.logger.Warn("watcher overflow, reloading")
				s.reloadLogged()
				continue
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Store) reloadLogged() {
	if err := s.Reload(); err != nil {
		s.logger.Error("reload failed, keeping previous data", "error", err)
		return
	}
	s.logger.Info("dataset reloaded", "dir", s.dir)
}
