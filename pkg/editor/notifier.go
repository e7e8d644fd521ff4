package editor

import (
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/scene"
)

// Notifier is informed of every structural change, synchronously and exactly
// once per change. Relabels are reported through Added again.
type Notifier interface {
	Added(el *scene.Element)
	Removed(el *scene.Element)
}

// Notifiers fans a notification out to several notifiers in order
type Notifiers []Notifier

func (ns Notifiers) Added(el *scene.Element) {
	for _, n := range ns {
		n.Added(el)
	}
}

func (ns Notifiers) Removed(el *scene.Element) {
	for _, n := range ns {
		n.Removed(el)
	}
}

// LogNotifier logs notifications at DEBUG
type LogNotifier struct{}

func (LogNotifier) Added(el *scene.Element) {
	logging.Debug("scene element added", "id", el.ID(), "params", scene.Params(el))
}

func (LogNotifier) Removed(el *scene.Element) {
	logging.Debug("scene element removed", "id", el.ID())
}
