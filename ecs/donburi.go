package ecs

import (
	"github.com/phanxgames/reef"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for reef scene events.
// Subscribe to this in your ECS systems to receive lifecycle changes.
var SceneEventType = events.NewEventType[reef.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) reef.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event reef.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
