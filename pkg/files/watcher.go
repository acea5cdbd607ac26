// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounceInterval = 100 * time.Millisecond

type WatcherOpts struct {
	// DebounceInterval is the quiet period after the last change before
	// onChange is invoked (defaults to DefaultDebounceInterval)
	DebounceInterval time.Duration
}

// Watcher reports changes to a set of local files or directories. Bursts
// of filesystem events are collapsed into a single notification.
type Watcher struct {
	watcher  *fsnotify.Watcher
	ui       UI
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
}

func NewWatcher(paths []string, opts WatcherOpts, ui UI) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("Creating file watcher: %s", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		ui:       ui,
		files:    map[string]struct{}{},
		debounce: opts.DebounceInterval,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounceInterval
	}

	for _, path := range paths {
		err := w.add(path)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("Abs path '%s': %s", path, err)
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("Checking file '%s': %s", path, err)
	}

	if !fi.IsDir() {
		// parent directory is watched so that files replaced by editors
		// (write to temp file, then rename) keep being tracked
		w.files[absPath] = struct{}{}
		return w.watchDir(filepath.Dir(absPath))
	}

	w.dirs = append(w.dirs, absPath)

	return filepath.Walk(absPath, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if walkedPath != absPath && strings.HasPrefix(fi.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watchDir(walkedPath)
	})
}

func (w *Watcher) watchDir(dir string) error {
	err := w.watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("Watching directory '%s': %s", dir, err)
	}
	w.ui.Debugf("watching: %s\n", dir)
	return nil
}

// Watch blocks until ctx is done, calling onChange after relevant files
// change. Errors returned by onChange are reported and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("File watcher events channel closed")
			}
			if !w.isRelevant(event) {
				continue
			}

			w.ui.Debugf("change: %s (%s)\n", event.Name, event.Op)

			if event.Op.Has(fsnotify.Create) {
				w.watchNewDir(event.Name)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil

			err := onChange()
			if err != nil {
				w.ui.Warnf("Rendering after change failed: %s\n", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("File watcher errors channel closed")
			}
			w.ui.Warnf("File watcher error: %s\n", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if _, found := w.files[event.Name]; found {
		return true
	}
	for _, dir := range w.dirs {
		if strings.HasPrefix(event.Name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) watchNewDir(path string) {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return
	}
	err = w.watchDir(path)
	if err != nil {
		w.ui.Warnf("%s\n", err)
	}
}
