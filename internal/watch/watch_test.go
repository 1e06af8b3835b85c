package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"go file write", fsnotify.Event{Name: "a/b.go", Op: fsnotify.Write}, true},
		{"config file", fsnotify.Event{Name: "typeroute.yaml", Op: fsnotify.Write}, true},
		{"test file", fsnotify.Event{Name: "a/b_test.go", Op: fsnotify.Write}, false},
		{"other file", fsnotify.Event{Name: "notes.md", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "a/b.go", Op: fsnotify.Chmod}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatchable(t *testing.T) {
	if watchable("pkg/testdata") {
		t.Error("testdata must be skipped")
	}
	if watchable("pkg/.git") {
		t.Error("hidden directories must be skipped")
	}
	if !watchable("pkg/api") {
		t.Error("ordinary directories must be watched")
	}
}

func TestWatcherFiresOnGoFileChange(t *testing.T) {
	dir := t.TempDir()

	fired := make(chan struct{}, 1)
	w := &Watcher{
		Root:     dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func() error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "app.go"), []byte("package app\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("OnChange never fired")
	}

	cancel()
	<-done
}

func TestWatcherIgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()

	fired := make(chan struct{}, 1)
	w := &Watcher{
		Root:     dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func() error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Error("OnChange fired for an irrelevant file")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	<-done
}
