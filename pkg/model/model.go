package model

import (
	"strconv"
	"strings"
)

// ElementKind tags an element id as a node or an arc
type ElementKind string

const (
	KindNode ElementKind = "node"
	KindArc  ElementKind = "arc"
)

const (
	nodePrefix = "node"
	arcPrefix  = "arc_"
	arcMarker  = "arc" // any id containing this substring denotes an arc
)

// ElementID is a parsed element identifier.
// The string form is the external encoding; Kind is derived from it once at the boundary.
type ElementID struct {
	Kind  ElementKind
	Value string
}

// ParseID classifies a raw element id.
// Ids containing "arc" are arcs, everything else is treated as a node.
func ParseID(raw string) ElementID {
	if strings.Contains(raw, arcMarker) {
		return ElementID{Kind: KindArc, Value: raw}
	}
	return ElementID{Kind: KindNode, Value: raw}
}

// IsArc reports whether the id denotes an arc
func (id ElementID) IsArc() bool {
	return id.Kind == KindArc
}

func (id ElementID) String() string {
	return id.Value
}

// NodeID formats the id of the node created for the given counter value
func NodeID(counter int) string {
	return nodePrefix + strconv.Itoa(counter)
}

// ArcID formats the composite id of the arc from source to target.
// The same ordered pair always yields the same id.
func ArcID(source, target string) string {
	return arcPrefix + source + "_" + target
}

// Point is a position in scene coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a vertex created by the editor
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Spawn Point  `json:"spawn"` // Set once at creation
}

// Relabel appends "1" to the label.
// This is string concatenation: "node3" becomes "node31".
func (n *Node) Relabel() {
	n.Label += "1"
}

// Arc represents a directed connection between two nodes.
// Source and Target are node ids, not owning references.
type Arc struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewArc builds the arc from source to target with its composite id
func NewArc(source, target string) *Arc {
	return &Arc{
		ID:     ArcID(source, target),
		Source: source,
		Target: target,
	}
}

// Touches returns true if the node is either endpoint of the arc
func (a *Arc) Touches(nodeID string) bool {
	return a.Source == nodeID || a.Target == nodeID
}
