package pubsub

import (
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/model"
	"github.com/ritzau/graf-editor/pkg/scene"
)

// SceneBridge forwards editor notifications to the scene topic.
// A relabel is reported as a second "added" event for the same id; consumers
// are expected to replace the element they hold for that id.
type SceneBridge struct {
	publisher Publisher
}

// NewSceneBridge creates a bridge publishing on publisher
func NewSceneBridge(publisher Publisher) *SceneBridge {
	return &SceneBridge{publisher: publisher}
}

// Added publishes an added event for the element
func (b *SceneBridge) Added(el *scene.Element) {
	b.publish(EventAdded, el)
}

// Removed publishes a removed event for the element
func (b *SceneBridge) Removed(el *scene.Element) {
	b.publish(EventRemoved, el)
}

func (b *SceneBridge) publish(eventType string, el *scene.Element) {
	data := ElementData{
		ID:     el.ID(),
		Kind:   string(model.ParseID(el.ID()).Kind),
		Href:   el.Attr("href"),
		Params: scene.Params(el),
	}

	markup, err := scene.Markup(el)
	if err != nil {
		logging.Warn("failed to render element markup", "id", data.ID, "error", err)
	}
	data.Markup = markup

	// Notifications are best effort; the editor state is already updated.
	if err := b.publisher.Publish(TopicScene, eventType, data); err != nil {
		logging.Warn("failed to publish scene event", "type", eventType, "id", data.ID, "error", err)
	}
}
