package preset

import (
	"errors"
	"testing"

	"github.com/phanxgames/party"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "spawn", "effect": "confetti", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "snapshot", "label": "after-burst"}
		]
	}`)

	runner, err := LoadScript(data, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "spawn" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "wait" || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "snapshot" || runner.steps[2].Label != "after-burst" {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "dance"}]}`},
		{"unknown effect", `{"steps": [{"action": "spawn", "effect": "fountain"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScriptUsesEffectsFile(t *testing.T) {
	f, err := Parse([]byte(fountainYAML))
	if err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"steps": [{"action": "spawn", "effect": "fountain", "x": 5, "y": 6}]}`)
	runner, err := LoadScript(data, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scene := party.NewScene(party.DefaultSettings())
	if err := runner.Step(scene); err != nil {
		t.Fatal(err)
	}
	scene.Tick(0)
	if len(scene.Emitters()) != 1 {
		t.Fatalf("emitters = %d, want 1", len(scene.Emitters()))
	}
	for _, p := range scene.Emitters()[0].Particles() {
		if p.Location != (party.Vector{5, 6, 0}) {
			t.Errorf("Location = %v, want spawn point (5, 6)", p.Location)
		}
	}
}

func TestRunnerStep(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "spawn", "effect": "sparkles", "x": 10, "y": 10},
		{"action": "wait", "frames": 3},
		{"action": "snapshot", "label": "twinkle"},
		{"action": "clear"}
	]}`)
	runner, err := LoadScript(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	runner.SetSnapshotFunc(func(label string) { labels = append(labels, label) })

	scene := party.NewScene(party.DefaultSettings())
	step := func() {
		t.Helper()
		if err := runner.Step(scene); err != nil {
			t.Fatal(err)
		}
		scene.Tick(1.0 / 60)
	}

	step() // spawn
	if len(scene.Emitters()) != 1 {
		t.Fatalf("emitters = %d after spawn, want 1", len(scene.Emitters()))
	}
	for range 3 {
		step() // wait
	}
	if len(labels) != 0 {
		t.Fatalf("snapshot taken during wait: %v", labels)
	}
	step() // snapshot
	if len(labels) != 1 || labels[0] != "twinkle" {
		t.Fatalf("labels = %v, want [twinkle]", labels)
	}
	if runner.Done() {
		t.Fatal("done before the last step")
	}
	step() // clear
	if len(scene.Emitters()) != 0 {
		t.Errorf("emitters = %d after clear, want 0", len(scene.Emitters()))
	}
	if !runner.Done() {
		t.Error("expected done after the last step")
	}
	step()
	if !runner.Done() {
		t.Error("done must stay set")
	}
}

func TestRunnerSpawnFailure(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "spawn", "effect": "confetti"}]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	runner.steps[0].Effect = "gone"
	err = runner.Step(party.NewScene(party.DefaultSettings()))
	if !errors.Is(err, party.ErrInvalidConfig) {
		t.Errorf("Step error = %v, want ErrInvalidConfig", err)
	}
}
