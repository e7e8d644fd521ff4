package scene

// Layout holds the two groups the editor maintains under the root.
// Arcs are appended first so they render beneath nodes.
type Layout struct {
	Arcs  *Element
	Nodes *Element
}

// NewLayout appends the arcs and nodes groups to the document root
func NewLayout(d *Document) *Layout {
	arcs := d.CreateElement(KindGroup)
	arcs.SetAttr("id", "arcs")
	d.Root().AppendChild(arcs)

	nodes := d.CreateElement(KindGroup)
	nodes.SetAttr("id", "nodes")
	d.Root().AppendChild(nodes)

	return &Layout{Arcs: arcs, Nodes: nodes}
}
