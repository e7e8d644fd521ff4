package editor

import "github.com/ritzau/graf-editor/pkg/model"

// Pointer records the last known cursor position
type Pointer struct {
	pos model.Point
}

// Update overwrites the position
func (p *Pointer) Update(x, y float64) {
	p.pos = model.Point{X: x, Y: y}
}

// Position returns a snapshot of the position
func (p *Pointer) Position() model.Point {
	return p.pos
}
