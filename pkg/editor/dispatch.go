package editor

import "github.com/ritzau/graf-editor/pkg/selection"

// Command is a graph mutation bound to a key
type Command string

const (
	CommandRelabel    Command = "relabel"
	CommandCreateNode Command = "create-node"
	CommandCreateArc  Command = "create-arc"
	CommandDelete     Command = "delete"
)

var keymap = map[string]Command{
	"i": CommandRelabel,
	"n": CommandCreateNode,
	"e": CommandCreateArc,
	"d": CommandDelete,
}

// CommandForKey maps a keystroke to its command.
// Returns false for keys that do nothing.
func CommandForKey(key string) (Command, bool) {
	cmd, ok := keymap[key]
	return cmd, ok
}

// Run executes a command against the engine
func (e *Engine) Run(cmd Command) error {
	switch cmd {
	case CommandRelabel:
		_, err := e.Relabel()
		return err
	case CommandCreateNode:
		e.CreateNode()
		return nil
	case CommandCreateArc:
		_, err := e.CreateArc()
		return err
	case CommandDelete:
		_, err := e.Delete()
		return err
	}
	return nil
}

// Shape kinds that can be selected by clicking
const (
	ShapeNodeMarker = "circle"
	ShapeArcMarker  = "line"
)

// SelectionTarget maps a clicked shape to the element id to select.
// Only node and arc markers are selectable; their ids carry a trailing
// sub-shape qualifier ("node1.circle") that is stripped.
func SelectionTarget(shape, rawID string) (string, bool) {
	if shape != ShapeNodeMarker && shape != ShapeArcMarker {
		return "", false
	}
	id := selection.Normalize(rawID)
	if id == "" {
		return "", false
	}
	return id, true
}
