package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the editor
const (
	TopicScene    = "scene"    // element added/removed notifications
	TopicTemplate = "template" // node/arc template reloads
)

// Event types
const (
	EventAdded    = "added"
	EventRemoved  = "removed"
	EventReloaded = "reloaded"
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "scene", "template")
	Type    string          `json:"type"`    // Event type (e.g., "added", "removed")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// ElementData describes a scene element in added/removed events.
// Markup is the element's SVG so the browser can patch its copy of the scene.
type ElementData struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"` // "node" or "arc"
	Href   string            `json:"href"`
	Params map[string]string `json:"params"`
	Markup string            `json:"markup"`
}

// TemplateData announces a new template revision
type TemplateData struct {
	Path     string `json:"path"`
	Revision int    `json:"revision"`
}
