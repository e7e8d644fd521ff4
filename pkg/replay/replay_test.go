package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ritzau/graf-editor/pkg/editor"
)

const scenario = `
events:
  - move: {x: 10, y: 20}
  - key: n
  - move: {x: 30, y: 40}
  - key: n
  - click: {shape: circle, id: node1.circle}
  - click: {shape: circle, id: node2.circle}
  - key: e
  - click: {shape: text, id: node1.text}
  - click: {shape: circle, id: node1.circle}
  - key: d
  - key: d
`

func TestApplyScenario(t *testing.T) {
	script, err := Parse([]byte(scenario))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	session := editor.NewSession(nil)
	result, err := Apply(context.Background(), session, script)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if result.Moves != 2 || result.Clicks != 3 || result.IgnoredClicks != 1 || result.Commands != 5 {
		t.Errorf("Unexpected counts %+v", result)
	}

	// The second delete finds an empty selection
	if len(result.Rejected) != 1 {
		t.Fatalf("Expected 1 rejection, got %+v", result.Rejected)
	}
	if r := result.Rejected[0]; r.Index != 10 || !errors.Is(r.Err, editor.ErrEmptySelection) {
		t.Errorf("Unexpected rejection %+v", r)
	}

	state := session.Snapshot()
	if len(state.Nodes) != 1 || state.Nodes[0].ID != "node2" {
		t.Errorf("Expected only node2 left, got %+v", state.Nodes)
	}
	if len(state.Arcs) != 0 {
		t.Errorf("Expected cascade to remove the arc, got %+v", state.Arcs)
	}
}

func TestParseRejectsAmbiguousEvents(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty event", "events:\n  - {}\n"},
		{"two fields", "events:\n  - {key: n, move: {x: 1, y: 2}}\n"},
		{"unknown field", "events:\n  - {scroll: 3}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.script)); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	script, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(script.Events) != 11 {
		t.Errorf("Expected 11 events, got %d", len(script.Events))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "reading script") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestApplyStopsOnCancel(t *testing.T) {
	script, err := Parse([]byte(scenario))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := editor.NewSession(nil)
	if _, err := Apply(ctx, session, script); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if n := len(session.Snapshot().Nodes); n != 0 {
		t.Errorf("Expected no nodes, got %d", n)
	}
}
