// Package replay drives an editor session from a recorded YAML event script.
//
// A script lists input events in the order they arrived:
//
//	events:
//	  - move: {x: 40, y: 60}
//	  - key: n
//	  - click: {shape: circle, id: node1.circle}
//	  - key: d
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ritzau/graf-editor/pkg/editor"
	"github.com/ritzau/graf-editor/pkg/logging"
	"gopkg.in/yaml.v2"
)

// Script is a sequence of input events
type Script struct {
	Events []Event `yaml:"events"`
}

// Event is one input event. Exactly one field is set.
type Event struct {
	Move  *Move  `yaml:"move,omitempty"`
	Click *Click `yaml:"click,omitempty"`
	Key   string `yaml:"key,omitempty"`
}

// Move is a pointer movement
type Move struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Click is a click on a rendered shape
type Click struct {
	Shape string `yaml:"shape"`
	ID    string `yaml:"id"`
}

// Rejection records a command the editor refused
type Rejection struct {
	Index int // position of the event in the script
	Key   string
	Err   error
}

// Result counts what happened while replaying
type Result struct {
	Moves         int
	Clicks        int
	IgnoredClicks int
	Commands      int
	Rejected      []Rejection
}

// Load reads a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.UnmarshalStrict(data, &script); err != nil {
		return nil, fmt.Errorf("error parsing script: %w", err)
	}
	for i, event := range script.Events {
		if err := event.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return &script, nil
}

func (e Event) validate() error {
	set := 0
	if e.Move != nil {
		set++
	}
	if e.Click != nil {
		set++
	}
	if e.Key != "" {
		set++
	}
	if set != 1 {
		return errors.New("exactly one of move, click or key must be set")
	}
	return nil
}

// Apply feeds the script's events to session in order.
// Rejected commands do not stop the replay; they are collected in the result.
// Returns early with ctx's error if ctx is cancelled.
func Apply(ctx context.Context, session *editor.Session, script *Script) (Result, error) {
	var result Result
	for i, event := range script.Events {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch {
		case event.Move != nil:
			session.PointerMove(event.Move.X, event.Move.Y)
			result.Moves++

		case event.Click != nil:
			if session.Click(ctx, event.Click.Shape, event.Click.ID) {
				result.Clicks++
			} else {
				result.IgnoredClicks++
			}

		default:
			result.Commands++
			if err := session.KeyPress(ctx, event.Key); err != nil {
				result.Rejected = append(result.Rejected, Rejection{Index: i, Key: event.Key, Err: err})
			}
		}
	}

	logging.DebugContext(ctx, "replay finished",
		"events", len(script.Events),
		"commands", result.Commands,
		"rejected", len(result.Rejected),
	)
	return result, nil
}
