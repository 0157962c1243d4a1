package reef

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string          `json:"action"`
	Label  string          `json:"label,omitempty"`
	X      float64         `json:"x,omitempty"`
	Y      float64         `json:"y,omitempty"`
	FromX  float64         `json:"fromX,omitempty"`
	FromY  float64         `json:"fromY,omitempty"`
	ToX    float64         `json:"toX,omitempty"`
	ToY    float64         `json:"toY,omitempty"`
	Frames int             `json:"frames,omitempty"`
	Patch  json.RawMessage `json:"patch,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events, scene mutators and
// screenshots across frames for automated visual testing. Attach to a Game
// via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner. Reconfigure patches are
// validated up front.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if st.Action != "reconfigure" {
			continue
		}
		if _, err := ParsePatch(st.Patch); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first step error, if any. A failing step ends the script.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the runner by one frame. Called from Game.Update before
// pointer input is processed.
func (r *TestRunner) step(s *Scene, in *PointerInput, shots *screenshotQueue) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.PendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		shots.add(st.Label)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "path":
		in.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		in.InjectLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "add":
		s.AddAgent()
	case "remove":
		s.RemoveAgent()
	case "reset":
		s.ResetScene()
	case "randomizeSpeed":
		s.RandomizeSpeed()
	case "toggle":
		switch st.Label {
		case "particles":
			s.ToggleParticles()
		case "background":
			s.ToggleBackground()
		case "pursuit":
			s.TogglePursuit()
		default:
			r.fail(fmt.Errorf("step %d: unknown toggle %q", r.cursor-1, st.Label))
			return
		}
	case "reconfigure":
		p, err := ParsePatch(st.Patch)
		if err != nil {
			r.fail(fmt.Errorf("step %d: %w", r.cursor-1, err))
			return
		}
		s.Reconfigure(p)
	default:
		r.fail(fmt.Errorf("step %d: unknown action %q", r.cursor-1, st.Action))
		return
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.PendingInjections() == 0 {
		r.done = true
	}
}

func (r *TestRunner) fail(err error) {
	r.err = err
	r.done = true
}
