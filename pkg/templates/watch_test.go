package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validTemplate = `<svg><g id="node"/><g id="arc"/></svg>`

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.svg")
	if err := os.WriteFile(path, []byte(validTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan int, 4)
	if err := s.Watch(ctx, func(revision int) { reloaded <- revision }); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	updated := `<svg><g id="node"><circle/></g><g id="arc"/></svg>`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case revision := <-reloaded:
		if revision < 2 {
			t.Errorf("Expected a new revision, got %d", revision)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for reload")
	}

	data, _ := s.Bytes()
	if string(data) != updated {
		t.Errorf("Store still holds %q", data)
	}
}

func TestWatchBuiltin(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Watch(context.Background(), nil); !errors.Is(err, ErrBuiltin) {
		t.Errorf("Expected ErrBuiltin, got %v", err)
	}
}
