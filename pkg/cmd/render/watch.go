// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
)

func (o *Options) watch(srcs []FileSource, ui ui.UI) error {
	paths, err := o.watchedPaths()
	if err != nil {
		return err
	}

	watcher, err := files.NewWatcher(paths, files.WatcherOpts{}, ui)
	if err != nil {
		return fmt.Errorf("Starting file watcher: %s", err)
	}
	defer watcher.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return o.watchWithWatcher(ctx, watcher, srcs, ui)
}

func (o *Options) watchWithWatcher(ctx context.Context, watcher *files.Watcher, srcs []FileSource, ui ui.UI) error {
	err := o.runOnce(srcs, ui)
	if err != nil {
		ui.Warnf("Rendering failed: %s\n", err)
	}

	return watcher.Watch(ctx, func() error {
		ui.Debugf("re-rendering\n")
		return o.runOnce(srcs, ui)
	})
}

// watchedPaths lists local paths whose changes affect rendering results.
func (o *Options) watchedPaths() ([]string, error) {
	if len(o.BulkFilesSourceOpts.BulkIn) > 0 {
		return nil, fmt.Errorf("Expected --watch to be used with local files, not bulk input")
	}

	var paths []string

	addLocal := func(path string) error {
		switch {
		case path == "-":
			return fmt.Errorf("Expected --watch to be used with local files, not stdin")
		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			return nil
		default:
			paths = append(paths, path)
			return nil
		}
	}

	for _, path := range o.RegularFilesSourceOpts.Files {
		err := addLocal(path)
		if err != nil {
			return nil, err
		}
	}

	for _, path := range o.DataValuesFlags.FromFiles {
		err := addLocal(path)
		if err != nil {
			return nil, err
		}
	}

	for _, kv := range o.DataValuesFlags.KVsFromFiles {
		pieces := strings.SplitN(kv, dvsKVSep, 2)
		if len(pieces) == 2 {
			err := addLocal(pieces[1])
			if err != nil {
				return nil, err
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("Expected at least one local file to watch")
	}

	return paths, nil
}
