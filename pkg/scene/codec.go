package scene

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ritzau/graf-editor/pkg/model"
)

// Element kinds and template references used by the editor
const (
	KindGroup = "g"
	KindUse   = "use"
	KindParam = "param"

	HrefNode = "#node"
	HrefArc  = "#arc"
)

// Parameter names carried by use elements
const (
	ParamLabel  = "label"
	ParamXInit  = "xinit"
	ParamYInit  = "yinit"
	ParamSource = "source"
	ParamTarget = "target"
)

// ErrMissingParam is returned when decoding an element that lacks a required parameter
var ErrMissingParam = errors.New("missing parameter")

// NewParam creates a detached param element holding a name/value pair
func (d *Document) NewParam(name, value string) *Element {
	p := d.CreateElement(KindParam)
	p.SetAttr("name", name)
	p.SetAttr("value", value)
	return p
}

// Param returns the value of the named param child of e
func Param(e *Element, name string) (string, bool) {
	for _, p := range e.ChildrenOfKind(KindParam) {
		if p.Attr("name") == name {
			return p.LookupAttr("value")
		}
	}
	return "", false
}

// SetParam updates the value of the named param child of e.
// Returns false if e has no such param.
func SetParam(e *Element, name, value string) bool {
	for _, p := range e.ChildrenOfKind(KindParam) {
		if p.Attr("name") == name {
			p.SetAttr("value", value)
			return true
		}
	}
	return false
}

// Params returns all param children of e as a map
func Params(e *Element) map[string]string {
	out := make(map[string]string)
	for _, p := range e.ChildrenOfKind(KindParam) {
		out[p.Attr("name")] = p.Attr("value")
	}
	return out
}

// EncodeNode builds the detached use element for a node
func (d *Document) EncodeNode(n *model.Node) *Element {
	use := d.CreateElement(KindUse)
	use.SetAttr("id", n.ID)
	use.SetAttr("href", HrefNode)
	use.AppendChild(d.NewParam(ParamLabel, n.Label))
	use.AppendChild(d.NewParam(ParamXInit, formatCoord(n.Spawn.X)))
	use.AppendChild(d.NewParam(ParamYInit, formatCoord(n.Spawn.Y)))
	return use
}

// EncodeArc builds the detached use element for an arc
func (d *Document) EncodeArc(a *model.Arc) *Element {
	use := d.CreateElement(KindUse)
	use.SetAttr("id", a.ID)
	use.SetAttr("href", HrefArc)
	use.AppendChild(d.NewParam(ParamSource, a.Source))
	use.AppendChild(d.NewParam(ParamTarget, a.Target))
	return use
}

// DecodeNode reads a node back from its use element
func DecodeNode(e *Element) (*model.Node, error) {
	label, ok := Param(e, ParamLabel)
	if !ok {
		return nil, fmt.Errorf("node %s: %s: %w", e.ID(), ParamLabel, ErrMissingParam)
	}
	x, err := parseCoord(e, ParamXInit)
	if err != nil {
		return nil, err
	}
	y, err := parseCoord(e, ParamYInit)
	if err != nil {
		return nil, err
	}
	return &model.Node{ID: e.ID(), Label: label, Spawn: model.Point{X: x, Y: y}}, nil
}

// DecodeArc reads an arc back from its use element
func DecodeArc(e *Element) (*model.Arc, error) {
	source, ok := Param(e, ParamSource)
	if !ok {
		return nil, fmt.Errorf("arc %s: %s: %w", e.ID(), ParamSource, ErrMissingParam)
	}
	target, ok := Param(e, ParamTarget)
	if !ok {
		return nil, fmt.Errorf("arc %s: %s: %w", e.ID(), ParamTarget, ErrMissingParam)
	}
	return &model.Arc{ID: e.ID(), Source: source, Target: target}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCoord(e *Element, name string) (float64, error) {
	raw, ok := Param(e, name)
	if !ok {
		return 0, fmt.Errorf("node %s: %s: %w", e.ID(), name, ErrMissingParam)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("node %s: invalid %s %q: %w", e.ID(), name, raw, err)
	}
	return v, nil
}
