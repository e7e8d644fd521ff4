package editor

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/model"
	"github.com/ritzau/graf-editor/pkg/scene"
	"github.com/ritzau/graf-editor/pkg/selection"
)

// Session is one editing session: a scene, its graph, the selection and the
// pointer. Input events are handled one at a time under a single lock, each
// running to completion before the next, so a keypress always sees the
// clicks that arrived before it.
type Session struct {
	mu      sync.Mutex
	id      string
	doc     *scene.Document
	pointer *Pointer
	stack   *selection.Stack
	engine  *Engine
}

// State is a read-only snapshot of a session
type State struct {
	Session string       `json:"session"`
	Nodes   []model.Node `json:"nodes"`
	Arcs    []model.Arc  `json:"arcs"`
	Cycles  [][]string   `json:"cycles,omitempty"`
	Stack   []string     `json:"stack"`
	Pointer model.Point  `json:"pointer"`
	NextID  string       `json:"nextId"`
}

// NewSession starts a session on an empty scene
func NewSession(notifier Notifier) *Session {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	doc := scene.NewDocument()
	pointer := &Pointer{}
	stack := selection.NewStack()

	s := &Session{
		id:      uuid.NewString(),
		doc:     doc,
		pointer: pointer,
		stack:   stack,
		engine:  NewEngine(doc, stack, pointer, notifier),
	}
	logging.Info("editor session started", "session", s.id)
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// PointerMove records the cursor position used by the next created node
func (s *Session) PointerMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer.Update(x, y)
}

// Click selects the element behind a clicked shape.
// Returns false when the shape is not a node or arc marker.
func (s *Session) Click(ctx context.Context, shape, rawID string) bool {
	id, ok := SelectionTarget(shape, rawID)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Push(id)
	logging.TraceContext(s.context(ctx), "element selected", "id", id, "stack", s.stack.Snapshot())
	return true
}

// KeyPress runs the command bound to key.
// Unbound keys do nothing. A rejected command is logged and otherwise
// ignored; the returned error is for callers that want to know why.
func (s *Session) KeyPress(ctx context.Context, key string) error {
	cmd, ok := CommandForKey(key)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.context(ctx)
	err := s.engine.Run(cmd)
	if err != nil {
		level := logging.DebugContext
		if errors.Is(err, ErrMissingElement) {
			level = logging.WarnContext
		}
		level(ctx, "command rejected", "command", string(cmd), "error", err, "stack", s.stack.Snapshot())
		return err
	}

	graph := s.engine.Graph()
	logging.InfoContext(ctx, "command applied",
		"command", string(cmd),
		"nodes", len(graph.Nodes()),
		"arcs", len(graph.Arcs()),
		"stack", s.stack.Snapshot(),
	)
	return nil
}

// Snapshot returns the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	graph := s.engine.Graph()
	state := State{
		Session: s.id,
		Nodes:   make([]model.Node, 0),
		Arcs:    make([]model.Arc, 0),
		Stack:   s.stack.Snapshot(),
		Pointer: s.pointer.Position(),
		NextID:  s.engine.NextNodeID(),
		Cycles:  graph.Cycles(),
	}
	for _, n := range graph.Nodes() {
		state.Nodes = append(state.Nodes, *n)
	}
	for _, a := range graph.Arcs() {
		state.Arcs = append(state.Arcs, *a)
	}
	return state
}

// WriteSVG renders the scene
func (s *Session) WriteSVG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.WriteSVG(w)
}

// WithScene runs fn with exclusive access to the scene document.
// Changes fn makes are not mirrored into the graph; the editor notices
// them when a later command resolves the affected ids.
func (s *Session) WithScene(fn func(doc *scene.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

func (s *Session) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithSessionID(ctx, s.id)
}
