package reef

// SceneEventType identifies a kind of scene lifecycle event.
type SceneEventType uint8

const (
	EventAgentAdded     SceneEventType = iota // an agent was appended
	EventAgentRemoved                         // the most recent agent was removed
	EventRetarget                             // an autonomous agent drew a new target
	EventModeChange                           // an agent switched steering mode
	EventWavesRebuilt                         // the oscillator set was replaced
	EventBubblesRebuilt                       // the bubble pool was (re)created
	EventReconfigured                         // a patch changed at least one option
)

func (t SceneEventType) String() string {
	switch t {
	case EventAgentAdded:
		return "agent-added"
	case EventAgentRemoved:
		return "agent-removed"
	case EventRetarget:
		return "retarget"
	case EventModeChange:
		return "mode-change"
	case EventWavesRebuilt:
		return "waves-rebuilt"
	case EventBubblesRebuilt:
		return "bubbles-rebuilt"
	case EventReconfigured:
		return "reconfigured"
	default:
		return "unknown"
	}
}

// SceneEvent carries lifecycle data to an EventSink.
type SceneEvent struct {
	Type SceneEventType
	// Agent is the index of the agent concerned, or -1.
	Agent int
	// Mode is the agent's mode after the event (EventModeChange, EventRetarget).
	Mode Mode
	// X, Y is the agent's new target (EventRetarget, EventModeChange).
	X, Y float64
	// Count is the collection size after the event.
	Count int
}

// EventSink is the interface for optional lifecycle observers such as the
// ECS bridge in package reef/ecs. Events are emitted synchronously from the
// scene's goroutine.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// SetEventSink sets the optional event observer. Pass nil to detach.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Scene) emit(e SceneEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
