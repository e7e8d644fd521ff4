// Package scene is an in-memory scene graph: a tree of named elements carrying
// string attributes, rendered as SVG.
//
// The editor treats it as an external collaborator. Anything holding the
// Document may add or remove elements behind the editor's back, so the editor
// re-resolves elements by id before every mutation.
package scene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// ErrNotChild is returned when removing an element from a parent it is not attached to
var ErrNotChild = errors.New("element is not a child of this parent")

// Attr is a single element attribute
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the scene tree
type Element struct {
	kind     string
	attrs    []Attr
	children []*Element
	parent   *Element
}

// Kind returns the element kind (tag name)
func (e *Element) Kind() string {
	return e.kind
}

// ID returns the element's id attribute
func (e *Element) ID() string {
	return e.Attr("id")
}

// Attr returns the value of the named attribute, or "" if it is not set
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr returns the value of the named attribute
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping the position of an existing one
func (e *Element) SetAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attrs returns a copy of the attributes in the order they were set
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// AppendChild attaches child as the last child of e, detaching it from any previous parent
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		_ = child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e
func (e *Element) RemoveChild(child *Element) error {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return fmt.Errorf("remove %s#%s: %w", child.kind, child.ID(), ErrNotChild)
}

// Children returns a copy of the child list
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// ChildrenOfKind returns the direct children with the given kind
func (e *Element) ChildrenOfKind(kind string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Parent returns the element e is attached to, or nil
func (e *Element) Parent() *Element {
	return e.parent
}

func (e *Element) find(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, c := range e.children {
		if found := c.find(id); found != nil {
			return found
		}
	}
	return nil
}

// MarshalXML writes the element and its subtree
func (e *Element) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: e.kind}
	start.Attr = start.Attr[:0]
	for _, a := range e.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range e.children {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Document is a scene tree rooted at an svg element
type Document struct {
	root *Element
}

// NewDocument creates a document with an empty svg root
func NewDocument() *Document {
	root := &Element{kind: "svg"}
	root.SetAttr("xmlns", svgNamespace)
	return &Document{root: root}
}

// Root returns the root element
func (d *Document) Root() *Element {
	return d.root
}

// CreateElement creates a detached element of the given kind
func (d *Document) CreateElement(kind string) *Element {
	return &Element{kind: kind}
}

// ElementByID finds an attached element by id.
// Detached elements are not found even if they were created by this document.
func (d *Document) ElementByID(id string) (*Element, bool) {
	if id == "" {
		return nil, false
	}
	el := d.root.find(id)
	return el, el != nil
}

// WriteSVG renders the whole document as indented SVG markup
func (d *Document) WriteSVG(w io.Writer) error {
	return writeElement(w, d.root, "  ")
}

// Markup renders a single element subtree on one line
func Markup(e *Element) (string, error) {
	var buf strings.Builder
	if err := writeElement(&buf, e, ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeElement(w io.Writer, e *Element, indent string) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("failed to encode %s: %w", e.kind, err)
	}
	return enc.Flush()
}
