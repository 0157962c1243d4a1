package reef

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "reconfigure", "patch": {"waveCount": 5, "waveColors": ["#ff0000"]}}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "move" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_BadPatch(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "reconfigure", "patch": {"waveColors": ["#nothex"]}}]}`))
	if err == nil {
		t.Error("expected error for an invalid patch")
	}
}

func TestRunnerStep_MoveAndLeave(t *testing.T) {
	ts := newTestScene(t, 800, 600, ConfigPatch{})
	in := NewPointerInput(ts.Scene)
	shots := &screenshotQueue{dir: t.TempDir()}

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 300, "y": 200},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: runner queues the move, input consumes it.
	runner.step(ts.Scene, in, shots)
	in.Update()
	if !ts.PointerInside() {
		t.Fatal("expected pointer inside after move")
	}

	// Frame 2: runner queues the leave.
	runner.step(ts.Scene, in, shots)
	in.Update()
	if ts.PointerInside() {
		t.Error("expected pointer absent after leave")
	}

	// Frame 3: injections drained, nothing left to run.
	runner.step(ts.Scene, in, shots)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	ts := newTestScene(t, 800, 600, ConfigPatch{CreatureCount: ptr(0)})
	in := NewPointerInput(ts.Scene)
	shots := &screenshotQueue{}

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "add"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		runner.step(ts.Scene, in, shots)
		if ts.AgentCount() != 0 {
			t.Fatalf("frame %d: add ran during the wait", i)
		}
	}
	runner.step(ts.Scene, in, shots)
	if ts.AgentCount() != 1 {
		t.Errorf("AgentCount = %d, want 1", ts.AgentCount())
	}
}

func TestRunnerStep_SceneActions(t *testing.T) {
	ts := newTestScene(t, 800, 600, ConfigPatch{})
	in := NewPointerInput(ts.Scene)
	shots := &screenshotQueue{}

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "add"},
		{"action": "add"},
		{"action": "remove"},
		{"action": "toggle", "label": "particles"},
		{"action": "toggle", "label": "pursuit"},
		{"action": "reconfigure", "patch": {"waveCount": 4, "retargetIntervalMs": 500}},
		{"action": "randomizeSpeed"},
		{"action": "screenshot", "label": "end state"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for !runner.Done() {
		runner.step(ts.Scene, in, shots)
	}
	if err := runner.Err(); err != nil {
		t.Fatalf("runner error: %v", err)
	}

	cfg := ts.Config()
	if ts.AgentCount() != 2 {
		t.Errorf("AgentCount = %d, want 2", ts.AgentCount())
	}
	if cfg.ParticlesEnabled || cfg.PursuitEnabled {
		t.Error("toggles not applied")
	}
	if cfg.WaveCount != 4 || cfg.RetargetInterval.Milliseconds() != 500 {
		t.Errorf("reconfigure not applied: %+v", cfg)
	}
	if len(shots.labels) != 1 || shots.labels[0] != "end state" {
		t.Errorf("screenshot labels = %v", shots.labels)
	}
}

func TestRunnerStep_UnknownAction(t *testing.T) {
	ts := newTestScene(t, 800, 600, ConfigPatch{})
	in := NewPointerInput(ts.Scene)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "explode"}, {"action": "add"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(ts.Scene, in, &screenshotQueue{})
	if runner.Err() == nil || !runner.Done() {
		t.Error("unknown action should fail the script")
	}
	runner.step(ts.Scene, in, &screenshotQueue{})
	if ts.AgentCount() != DefaultCreatureCount {
		t.Error("steps ran after a failure")
	}
}

func TestRunnerStep_UnknownToggle(t *testing.T) {
	ts := newTestScene(t, 800, 600, ConfigPatch{})
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "toggle", "label": "lights"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(ts.Scene, NewPointerInput(ts.Scene), &screenshotQueue{})
	if runner.Err() == nil {
		t.Error("unknown toggle should fail the script")
	}
}
