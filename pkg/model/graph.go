package model

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Graph holds the nodes and arcs being edited.
// Structure queries (incidence, duplicate detection) go through a gonum directed graph;
// the structured Node and Arc values are kept alongside it keyed by their string ids.
type Graph struct {
	index   *simple.DirectedGraph
	nodes   map[string]*Node
	arcs    map[string]*Arc
	ids     map[string]int64 // node id -> index id
	names   map[int64]string // index id -> node id
	seq     map[string]int   // element id -> insertion order
	nextID  int64
	nextSeq int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: simple.NewDirectedGraph(),
		nodes: make(map[string]*Node),
		arcs:  make(map[string]*Arc),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
		seq:   make(map[string]int),
	}
}

// AddNode adds a node to the graph. If a node with the same ID exists, it is replaced.
func (g *Graph) AddNode(node *Node) {
	if _, exists := g.nodes[node.ID]; !exists {
		g.ids[node.ID] = g.nextID
		g.names[g.nextID] = node.ID
		g.index.AddNode(simple.Node(g.nextID))
		g.nextID++
		g.touch(node.ID)
	}
	g.nodes[node.ID] = node
}

// Node returns a node by id
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// RemoveNode removes a node and returns any arcs that were still attached to it.
func (g *Graph) RemoveNode(id string) []*Arc {
	if _, ok := g.nodes[id]; !ok {
		return nil
	}

	dangling := g.IncidentArcs(id)
	for _, arc := range dangling {
		g.RemoveArc(arc.ID)
	}

	g.index.RemoveNode(g.ids[id])
	delete(g.names, g.ids[id])
	delete(g.ids, id)
	delete(g.nodes, id)
	delete(g.seq, id)
	return dangling
}

// AddArc adds an arc between two existing nodes.
// Returns false if an endpoint is unknown, the arc is a self-loop or it already exists.
func (g *Graph) AddArc(arc *Arc) bool {
	from, okFrom := g.ids[arc.Source]
	to, okTo := g.ids[arc.Target]
	if !okFrom || !okTo || from == to {
		return false
	}
	if g.index.HasEdgeFromTo(from, to) {
		return false
	}

	g.index.SetEdge(g.index.NewEdge(g.index.Node(from), g.index.Node(to)))
	g.arcs[arc.ID] = arc
	g.touch(arc.ID)
	return true
}

// HasArc returns true if an arc from source to target exists.
// The reverse direction is a different arc.
func (g *Graph) HasArc(source, target string) bool {
	from, okFrom := g.ids[source]
	to, okTo := g.ids[target]
	if !okFrom || !okTo {
		return false
	}
	return g.index.HasEdgeFromTo(from, to)
}

// Arc returns an arc by id
func (g *Graph) Arc(id string) (*Arc, bool) {
	arc, ok := g.arcs[id]
	return arc, ok
}

// RemoveArc removes an arc by id. Returns false if no such arc exists.
func (g *Graph) RemoveArc(id string) bool {
	arc, ok := g.arcs[id]
	if !ok {
		return false
	}
	g.index.RemoveEdge(g.ids[arc.Source], g.ids[arc.Target])
	delete(g.arcs, id)
	delete(g.seq, id)
	return true
}

// IncidentArcs returns every arc that has the node as source or target, in insertion order.
func (g *Graph) IncidentArcs(nodeID string) []*Arc {
	id, ok := g.ids[nodeID]
	if !ok {
		return nil
	}

	var arcs []*Arc
	out := g.index.From(id)
	for out.Next() {
		target := g.names[out.Node().ID()]
		arcs = append(arcs, g.arcs[ArcID(nodeID, target)])
	}
	in := g.index.To(id)
	for in.Next() {
		source := g.names[in.Node().ID()]
		arcs = append(arcs, g.arcs[ArcID(source, nodeID)])
	}

	sort.Slice(arcs, func(i, j int) bool {
		return g.seq[arcs[i].ID] < g.seq[arcs[j].ID]
	})
	return arcs
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return g.seq[nodes[i].ID] < g.seq[nodes[j].ID]
	})
	return nodes
}

// Arcs returns all arcs in insertion order
func (g *Graph) Arcs() []*Arc {
	arcs := make([]*Arc, 0, len(g.arcs))
	for _, arc := range g.arcs {
		arcs = append(arcs, arc)
	}
	sort.Slice(arcs, func(i, j int) bool {
		return g.seq[arcs[i].ID] < g.seq[arcs[j].ID]
	})
	return arcs
}

func (g *Graph) touch(id string) {
	g.seq[id] = g.nextSeq
	g.nextSeq++
}
