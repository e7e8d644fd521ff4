package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/graf-editor/pkg/editor"
	"github.com/ritzau/graf-editor/pkg/replay"
)

// PrintSummary prints a colored summary of a session's graph and selection.
// result may be nil when the state did not come from a replay.
func PrintSummary(w io.Writer, state editor.State, result *replay.Result) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Fprintln(w, "Graph Editor - Session Summary")
	bold.Fprintln(w, "==============================")
	fmt.Fprintf(w, "Session: %s\n", state.Session)
	fmt.Fprintf(w, "Pointer: (%g, %g)\n", state.Pointer.X, state.Pointer.Y)
	fmt.Fprintf(w, "Next node: %s\n", state.NextID)
	fmt.Fprintln(w)

	green.Fprintf(w, "NODES (%d):\n", len(state.Nodes))
	for _, n := range state.Nodes {
		fmt.Fprintf(w, "  %s", n.ID)
		if n.Label != n.ID {
			cyan.Fprintf(w, " %q", n.Label)
		}
		fmt.Fprintf(w, " at (%g, %g)\n", n.Spawn.X, n.Spawn.Y)
	}

	green.Fprintf(w, "ARCS (%d):\n", len(state.Arcs))
	for _, a := range state.Arcs {
		fmt.Fprintf(w, "  %s -> %s\n", a.Source, a.Target)
	}

	for _, cycle := range state.Cycles {
		yellow.Fprintf(w, "Cycle: %s\n", strings.Join(cycle, " -> "))
	}

	if len(state.Stack) > 0 {
		yellow.Fprintf(w, "Selected: %v\n", state.Stack)
	}

	if result == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replayed: %d moves, %d clicks (%d ignored), %d commands\n",
		result.Moves, result.Clicks+result.IgnoredClicks, result.IgnoredClicks, result.Commands)

	if len(result.Rejected) == 0 {
		green.Fprintln(w, "All commands applied")
		return
	}
	red.Fprintf(w, "REJECTED (%d):\n", len(result.Rejected))
	for _, r := range result.Rejected {
		yellow.Fprintf(w, "  event %d key %q: ", r.Index, r.Key)
		fmt.Fprintln(w, r.Err)
	}
}
