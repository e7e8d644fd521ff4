package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/ritzau/graf-editor/pkg/model"
)

func TestElementByID(t *testing.T) {
	doc := NewDocument()
	layout := NewLayout(doc)

	use := doc.EncodeNode(&model.Node{ID: "node1", Label: "node1"})
	if _, ok := doc.ElementByID("node1"); ok {
		t.Error("Detached element should not be found")
	}

	layout.Nodes.AppendChild(use)
	got, ok := doc.ElementByID("node1")
	if !ok || got != use {
		t.Fatal("Attached element not found")
	}

	if err := layout.Nodes.RemoveChild(use); err != nil {
		t.Fatalf("RemoveChild() error = %v", err)
	}
	if _, ok := doc.ElementByID("node1"); ok {
		t.Error("Removed element should not be found")
	}
}

func TestRemoveChildNotAttached(t *testing.T) {
	doc := NewDocument()
	layout := NewLayout(doc)
	stray := doc.CreateElement(KindUse)

	err := layout.Arcs.RemoveChild(stray)
	if !errors.Is(err, ErrNotChild) {
		t.Errorf("Expected ErrNotChild, got %v", err)
	}
}

func TestAppendChildReparents(t *testing.T) {
	doc := NewDocument()
	layout := NewLayout(doc)
	use := doc.CreateElement(KindUse)

	layout.Arcs.AppendChild(use)
	layout.Nodes.AppendChild(use)

	if len(layout.Arcs.Children()) != 0 {
		t.Error("Element should have left its previous parent")
	}
	if use.Parent() != layout.Nodes {
		t.Error("Element should be attached to nodes")
	}
}

func TestSetAttrKeepsOrder(t *testing.T) {
	e := NewDocument().CreateElement(KindUse)
	e.SetAttr("id", "a")
	e.SetAttr("href", "#node")
	e.SetAttr("id", "b")

	attrs := e.Attrs()
	if len(attrs) != 2 || attrs[0].Name != "id" || attrs[0].Value != "b" {
		t.Errorf("Unexpected attrs %v", attrs)
	}
}

func TestWriteSVG(t *testing.T) {
	doc := NewDocument()
	layout := NewLayout(doc)
	layout.Nodes.AppendChild(doc.EncodeNode(&model.Node{ID: "node1", Label: "node1", Spawn: model.Point{X: 10, Y: 20}}))

	var sb strings.Builder
	if err := doc.WriteSVG(&sb); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg">`,
		`<g id="arcs"></g>`,
		`<use id="node1" href="#node">`,
		`<param name="xinit" value="10"></param>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, `id="arcs"`) > strings.Index(out, `id="nodes"`) {
		t.Error("arcs group should precede nodes group")
	}
}
