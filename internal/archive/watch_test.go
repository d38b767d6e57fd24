package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_ArchivesNewFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "before.csv", "present at startup")

	a := New(dir, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries := make(chan *Entry, 4)
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, entries) }()

	// Backlog file is archived first.
	first := waitEntry(t, entries)
	assert.Equal(t, "before.csv", first.Original)

	// A file created after startup is picked up by the watcher.
	writeFile(t, dir, "after.csv", "created during watch")
	second := waitEntry(t, entries)
	assert.Equal(t, "after.csv", second.Original)

	_, err := os.Stat(filepath.Join(dir, "after.csv"))
	assert.True(t, os.IsNotExist(err), "watched file should have been moved")

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled), "unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatch_IgnoresNonMatchingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	a := New(dir, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries := make(chan *Entry, 1)
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, entries) }()

	writeFile(t, dir, "notes.txt", "not a grade export")

	select {
	case e := <-entries:
		t.Fatalf("unexpected archive of %s", e.Original)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func waitEntry(t *testing.T, entries <-chan *Entry) *Entry {
	t.Helper()
	select {
	case e := <-entries:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for archive entry")
		return nil
	}
}
