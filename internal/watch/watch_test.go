// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchFiresOnChange(t *testing.T) {
	root := t.TempDir()

	var calls atomic.Int32
	fired := make(chan struct{}, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{root}, 20*time.Millisecond, func() {
			calls.Add(1)
			fired <- struct{}{}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "note.md"), []byte("x\n"), 0o644))

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire after file creation")
	}

	cancel()
	require.NoError(t, <-done)
	require.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestWatchDebouncesBursts(t *testing.T) {
	root := t.TempDir()

	fired := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{root}, 200*time.Millisecond, func() {
			fired <- struct{}{}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	// A quick burst of writes should collapse into one callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "burst.md"), []byte("x\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire after burst")
	}

	select {
	case <-fired:
		t.Fatal("burst produced more than one callback")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, 0, func() {})
	require.Error(t, err)
}
