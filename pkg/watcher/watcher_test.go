package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerFoldsBurst(t *testing.T) {
	input := make(chan ChangeEvent)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDebouncer(input, 30*time.Millisecond, time.Second)
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		input <- ChangeEvent{Path: "template.svg", Count: 1, Timestamp: time.Now()}
	}

	select {
	case event := <-d.Output():
		if event.Count != 5 {
			t.Errorf("Expected 5 folded events, got %d", event.Count)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for debounced event")
	}

	select {
	case event := <-d.Output():
		t.Errorf("Unexpected extra event %+v", event)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	input := make(chan ChangeEvent)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDebouncer(input, 50*time.Millisecond, 120*time.Millisecond)
	d.Start(ctx)

	// Keep the input busy for longer than maxWait
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 12; i++ {
			select {
			case input <- ChangeEvent{Path: "template.svg", Count: 1}:
			case <-ctx.Done():
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	select {
	case event := <-d.Output():
		if event.Count >= 12 {
			t.Errorf("Expected a flush before the burst ended, got count %d", event.Count)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for max-wait flush")
	}
	<-done
}

func TestDebouncerFlushesOnClose(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)
	d.Start(context.Background())

	input <- ChangeEvent{Path: "template.svg", Count: 1}
	close(input)

	event, ok := <-d.Output()
	if !ok || event.Count != 1 {
		t.Errorf("Expected pending event on close, got %+v ok=%v", event, ok)
	}
	if _, ok := <-d.Output(); ok {
		t.Error("Output should be closed")
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.svg")
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Changes to other files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<svg></svg>"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-fw.Events():
		if filepath.Base(event.Path) != "template.svg" {
			t.Errorf("Unexpected path %s", event.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for file change")
	}

	cancel()
	for range fw.Events() {
	}
}
