// Package watch runs a callback whenever Go source under a directory tree
// changes. Events are debounced so editor save bursts trigger one run.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before the callback fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher triggers a callback on source changes.
type Watcher struct {
	// Root is the directory tree to watch.
	Root string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnChange runs after each debounced change burst. A returned error is
	// reported through OnError but does not stop watching.
	OnChange func() error

	// OnError receives watch and callback errors. Optional.
	OnError func(error)
}

// Run watches until ctx is cancelled. Newly created directories are added
// to the watch set; hidden directories and testdata are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addTree(fsw, w.Root); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if watchable(event.Name) {
					// Ignore the error: the path may already be gone.
					_ = addTree(fsw, event.Name)
				}
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)

		case <-fire:
			timer = nil
			fire = nil
			if err := w.OnChange(); err != nil {
				w.reportError(err)
			}
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil && err != nil {
		w.OnError(err)
	}
}

// relevant reports whether an event should trigger regeneration. Only Go
// source and the project config file count.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasSuffix(base, "_test.go") {
		return false
	}
	return strings.HasSuffix(base, ".go") || base == "typeroute.yaml"
}

// addTree registers dir and all watchable subdirectories.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !watchable(path) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// watchable skips hidden directories and testdata.
func watchable(path string) bool {
	base := filepath.Base(path)
	if base == "testdata" {
		return false
	}
	return !strings.HasPrefix(base, ".") || base == "." || base == ".."
}
