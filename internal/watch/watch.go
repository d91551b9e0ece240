// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a scan whenever the notes tree or the library
// storage changes on disk. Events are debounced so a burst of writes
// (an editor save, a Zotero import) triggers a single pass.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a rescan fires.
const DefaultDebounce = 500 * time.Millisecond

// Watch monitors roots recursively and calls onChange after each
// debounced batch of filesystem events, until ctx is cancelled.
// Directories created while watching are added to the watch list. The
// first onChange call happens only after a change; callers wanting an
// initial pass run it themselves before calling Watch.
func Watch(ctx context.Context, roots []string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range roots {
		if err := addDirsRecursive(w, root); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				// New directories need their own watches; stat errors
				// mean the entry vanished again and can be ignored.
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					_ = addDirsRecursive(w, ev.Name)
				}
			}
			schedule()

		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// addDirsRecursive walks root and adds every directory to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
