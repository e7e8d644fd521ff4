package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ritzau/graf-editor/pkg/model"
	"github.com/ritzau/graf-editor/pkg/scene"
)

func TestSceneBridgePublishes(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := pub.Subscribe(ctx, TopicScene)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	doc := scene.NewDocument()
	bridge := NewSceneBridge(pub)
	bridge.Added(doc.EncodeNode(&model.Node{ID: "node1", Label: "node1", Spawn: model.Point{X: 10, Y: 20}}))
	bridge.Removed(doc.EncodeArc(model.NewArc("node1", "node2")))

	want := []struct {
		eventType string
		id        string
		kind      string
	}{
		{EventAdded, "node1", "node"},
		{EventRemoved, "arc_node1_node2", "arc"},
	}

	for i, w := range want {
		select {
		case event := <-sub.Events():
			if event.Type != w.eventType {
				t.Errorf("Event %d: expected type %s, got %s", i, w.eventType, event.Type)
			}
			var data ElementData
			if err := json.Unmarshal(event.Data, &data); err != nil {
				t.Fatalf("Event %d: bad payload: %v", i, err)
			}
			if data.ID != w.id || data.Kind != w.kind {
				t.Errorf("Event %d: expected %s/%s, got %s/%s", i, w.id, w.kind, data.ID, data.Kind)
			}
			if data.Markup == "" {
				t.Errorf("Event %d: expected markup", i)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for event %d", i)
		}
	}
}

func TestSceneBridgeRelabelParams(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()
	pub.ConfigureTopic(TopicScene, TopicConfig{BufferSize: 1})

	doc := scene.NewDocument()
	use := doc.EncodeNode(&model.Node{ID: "node1", Label: "node1"})
	scene.SetParam(use, scene.ParamLabel, "node11")
	NewSceneBridge(pub).Added(use)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := pub.Subscribe(ctx, TopicScene)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		var data ElementData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if data.Params[scene.ParamLabel] != "node11" {
			t.Errorf("Expected label node11, got %q", data.Params[scene.ParamLabel])
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for replayed event")
	}
}
