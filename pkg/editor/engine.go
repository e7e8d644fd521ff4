package editor

import (
	"fmt"

	"github.com/ritzau/graf-editor/pkg/model"
	"github.com/ritzau/graf-editor/pkg/scene"
	"github.com/ritzau/graf-editor/pkg/selection"
)

// Engine applies the four graph mutations.
//
// Every mutation first resolves and validates everything it touches, then
// updates the graph, the scene and the selection, and finally notifies once
// per added or removed element. A failed command changes nothing except the
// selection entries it consumed.
type Engine struct {
	doc      *scene.Document
	layout   *scene.Layout
	graph    *model.Graph
	stack    *selection.Stack
	pointer  *Pointer
	notifier Notifier
	counter  int
}

// NewEngine creates an engine that edits doc.
// The arcs and nodes groups are appended to the document root.
func NewEngine(doc *scene.Document, stack *selection.Stack, pointer *Pointer, notifier Notifier) *Engine {
	return &Engine{
		doc:      doc,
		layout:   scene.NewLayout(doc),
		graph:    model.NewGraph(),
		stack:    stack,
		pointer:  pointer,
		notifier: notifier,
		counter:  1,
	}
}

// Graph returns the structured graph. Callers must not modify it.
func (e *Engine) Graph() *model.Graph {
	return e.graph
}

// NextNodeID returns the id the next created node will get
func (e *Engine) NextNodeID() string {
	return model.NodeID(e.counter)
}

// CreateNode adds a node at the current pointer position.
// Its label starts out equal to its id. Ids are never reused within a session.
func (e *Engine) CreateNode() *model.Node {
	id := model.NodeID(e.counter)
	e.counter++

	node := &model.Node{
		ID:    id,
		Label: id,
		Spawn: e.pointer.Position(),
	}
	el := e.doc.EncodeNode(node)

	e.graph.AddNode(node)
	e.layout.Nodes.AppendChild(el)
	e.notifier.Added(el)
	return node
}

// Relabel appends "1" to the label of the most recently selected node
func (e *Engine) Relabel() (*model.Node, error) {
	id, ok := e.stack.PopOne()
	if !ok {
		return nil, fmt.Errorf("relabel: %w", ErrEmptySelection)
	}

	node, el, err := e.resolveNode(id)
	if err != nil {
		return nil, fmt.Errorf("relabel: %w", err)
	}
	if _, ok := scene.Param(el, scene.ParamLabel); !ok {
		return nil, fmt.Errorf("relabel %s: label: %w", id, ErrMissingElement)
	}

	node.Relabel()
	scene.SetParam(el, scene.ParamLabel, node.Label)
	e.notifier.Added(el)
	return node, nil
}

// CreateArc connects the two most recently selected nodes.
// The last selected becomes the target, the one before it the source.
// Both entries are consumed even when the arc is rejected.
func (e *Engine) CreateArc() (*model.Arc, error) {
	target, source, ok := e.stack.PopTwo()
	if !ok {
		return nil, fmt.Errorf("create arc: %w", ErrEmptySelection)
	}

	if model.ParseID(target).IsArc() {
		return nil, fmt.Errorf("create arc: target %s: %w", target, ErrInvalidArcEndpoint)
	}
	if model.ParseID(source).IsArc() {
		return nil, fmt.Errorf("create arc: source %s: %w", source, ErrInvalidArcEndpoint)
	}
	if source == target {
		return nil, fmt.Errorf("create arc %s: %w", source, ErrSelfLoop)
	}

	arc := model.NewArc(source, target)
	if _, exists := e.doc.ElementByID(arc.ID); exists || e.graph.HasArc(source, target) {
		return nil, fmt.Errorf("create arc %s: %w", arc.ID, ErrDuplicateArc)
	}

	if _, _, err := e.resolveNode(source); err != nil {
		return nil, fmt.Errorf("create arc %s: source: %w", arc.ID, err)
	}
	if _, _, err := e.resolveNode(target); err != nil {
		return nil, fmt.Errorf("create arc %s: target: %w", arc.ID, err)
	}

	el := e.doc.EncodeArc(arc)
	e.graph.AddArc(arc)
	e.layout.Arcs.AppendChild(el)
	e.notifier.Added(el)
	return arc, nil
}

// Delete removes the most recently selected element.
// Deleting a node also deletes every arc that starts or ends at it; those arcs
// are removed first and purged from the selection. Returns the removed ids in
// removal order.
func (e *Engine) Delete() ([]string, error) {
	id, ok := e.stack.PopOne()
	if !ok {
		return nil, fmt.Errorf("delete: %w", ErrEmptySelection)
	}
	e.stack.RemoveByID(id)

	if model.ParseID(id).IsArc() {
		return e.deleteArc(id)
	}
	return e.deleteNode(id)
}

func (e *Engine) deleteArc(id string) ([]string, error) {
	arc, ok := e.graph.Arc(id)
	el, found := e.doc.ElementByID(id)
	if !ok || !found || el.Parent() != e.layout.Arcs {
		return nil, fmt.Errorf("delete arc %s: %w", id, ErrMissingElement)
	}

	e.graph.RemoveArc(arc.ID)
	e.detach(e.layout.Arcs, el)
	e.notifier.Removed(el)
	return []string{id}, nil
}

func (e *Engine) deleteNode(id string) ([]string, error) {
	_, nodeEl, err := e.resolveNode(id)
	if err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}

	type cascaded struct {
		arc *model.Arc
		el  *scene.Element
	}
	var arcs []cascaded
	for _, arc := range e.graph.IncidentArcs(id) {
		el, found := e.doc.ElementByID(arc.ID)
		if !found || el.Parent() != e.layout.Arcs {
			el = nil
		}
		arcs = append(arcs, cascaded{arc: arc, el: el})
	}

	removed := make([]string, 0, len(arcs)+1)
	for _, c := range arcs {
		e.graph.RemoveArc(c.arc.ID)
		e.stack.RemoveByID(c.arc.ID)
		// Arcs already removed from the scene by someone else only leave the graph
		if c.el != nil {
			e.detach(e.layout.Arcs, c.el)
			e.notifier.Removed(c.el)
		}
		removed = append(removed, c.arc.ID)
	}

	e.graph.RemoveNode(id)
	e.detach(e.layout.Nodes, nodeEl)
	e.notifier.Removed(nodeEl)
	return append(removed, id), nil
}

// resolveNode finds a node in both the graph and the scene
func (e *Engine) resolveNode(id string) (*model.Node, *scene.Element, error) {
	if model.ParseID(id).IsArc() {
		return nil, nil, fmt.Errorf("%s is not a node: %w", id, ErrNotFound)
	}
	node, ok := e.graph.Node(id)
	el, found := e.doc.ElementByID(id)
	if !ok || !found || el.Parent() != e.layout.Nodes {
		return nil, nil, fmt.Errorf("node %s: %w", id, ErrMissingElement)
	}
	return node, el, nil
}

// detach removes an element whose parent was checked during resolution
func (e *Engine) detach(parent, el *scene.Element) {
	_ = parent.RemoveChild(el)
}
