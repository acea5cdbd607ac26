// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchedPaths(t *testing.T) {
	opts := NewOptions()
	opts.RegularFilesSourceOpts.Files = []string{"tpl/", "https://example.com/tpl.txt"}
	opts.DataValuesFlags.FromFiles = []string{"values.yml"}
	opts.DataValuesFlags.KVsFromFiles = []string{"key=contents.txt"}

	paths, err := opts.watchedPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"tpl/", "values.yml", "contents.txt"}, paths)
}

func TestWatchedPathsRejectsNonLocalInput(t *testing.T) {
	opts := NewOptions()
	opts.RegularFilesSourceOpts.Files = []string{"-"}
	_, err := opts.watchedPaths()
	require.EqualError(t, err, "Expected --watch to be used with local files, not stdin")

	opts = NewOptions()
	opts.BulkFilesSourceOpts.BulkIn = "{}"
	_, err = opts.watchedPaths()
	require.EqualError(t, err, "Expected --watch to be used with local files, not bulk input")

	opts = NewOptions()
	_, err = opts.watchedPaths()
	require.EqualError(t, err, "Expected at least one local file to watch")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRendersAgainAfterChange(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "tpl.txt")
	require.NoError(t, os.WriteFile(tplPath, []byte("v1:%% {{n}} %%;"), 0600))

	stdout := &syncBuffer{}
	tty := ui.NewCustomWriterTTY(false, stdout, &syncBuffer{})

	opts := NewOptions()
	opts.RegularFilesSourceOpts.Files = []string{tplPath}
	opts.DataValuesFlags.KVsFromStrings = []string{"n=1"}

	watcher, err := files.NewWatcher([]string{tplPath}, files.WatcherOpts{DebounceInterval: 10 * time.Millisecond}, tty)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srcs := []FileSource{
		NewBulkFilesSource(opts.BulkFilesSourceOpts, tty),
		NewRegularFilesSource(opts.RegularFilesSourceOpts, tty),
	}

	done := make(chan error, 1)
	go func() {
		done <- opts.watchWithWatcher(ctx, watcher, srcs, tty)
	}()

	require.Eventually(t, func() bool {
		return stdout.String() == "v1:1;"
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(tplPath, []byte("v2:%% {{n}} %%;"), 0600))

	require.Eventually(t, func() bool {
		return strings.HasSuffix(stdout.String(), "v2:1;")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
