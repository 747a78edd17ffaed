package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirWatcher_Errors(t *testing.T) {
	_, err := newDirWatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := writeFile(t, t.TempDir(), "a.md", "# A")
	_, err = newDirWatcher(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestDirWatcher_HandleFsEvent(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.md", "# A")
	hidden := writeFile(t, dir, ".a.md.swp", "x")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w, err := newDirWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
	}{
		{"create file", fsnotify.Event{Name: file, Op: fsnotify.Create}, file},
		{"write file", fsnotify.Event{Name: file, Op: fsnotify.Write}, file},
		{"chmod ignored", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, ""},
		{"remove ignored", fsnotify.Event{Name: file, Op: fsnotify.Remove}, ""},
		{"rename ignored", fsnotify.Event{Name: file, Op: fsnotify.Rename}, ""},
		{"hidden ignored", fsnotify.Event{Name: hidden, Op: fsnotify.Create}, ""},
		{"directory ignored", fsnotify.Event{Name: sub, Op: fsnotify.Create}, ""},
		{"vanished file ignored", fsnotify.Event{Name: filepath.Join(dir, "gone.md"), Op: fsnotify.Write}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleFsEvent(tt.event))
		})
	}
}

func TestDirWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	w, err := newDirWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		batches [][]string
	)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, 50*time.Millisecond, func(_ context.Context, paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})
	}()

	b := filepath.Join(dir, "b.md")
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(b, []byte("# B"), 0o644))
	require.NoError(t, os.WriteFile(a, []byte("# A"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("# B2"), 0o644))

	seen := func() map[string]bool {
		mu.Lock()
		defer mu.Unlock()
		set := make(map[string]bool)
		for _, batch := range batches {
			for _, p := range batch {
				set[p] = true
			}
		}
		return set
	}
	assert.Eventually(t, func() bool {
		set := seen()
		return set[a] && set[b]
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, batch := range batches {
		assert.IsIncreasing(t, batch)
	}
}

func TestIngestPaths(t *testing.T) {
	ts := setupTestServices(t)
	dir := t.TempDir()
	md := writeFile(t, dir, "a.md", "# A")
	deck := writeFile(t, dir, "deck.pptx", "slides")
	missing := filepath.Join(dir, "missing.md")

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	ingestPaths(context.Background(), cmd, []string{md, deck, missing})

	out := buf.String()
	assert.Contains(t, out, "completed  md")
	assert.Contains(t, out, "skipped "+deck)
	assert.Contains(t, out, "FAILED  "+missing)

	docs, err := ts.docs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.md", docs[0].Name)
}

func TestWatchCmd_Flags(t *testing.T) {
	settle := watchCmd.Flags().Lookup("settle")
	require.NotNil(t, settle)
	assert.Equal(t, defaultSettle.String(), settle.DefValue)
	require.NotNil(t, watchCmd.Flags().Lookup("validate"))
}
