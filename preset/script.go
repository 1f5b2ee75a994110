package preset

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/party"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Effect string  `json:"effect,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// Runner sequences effect spawns and snapshots across frames, for
// recordings and golden-image tests. Call Step once per frame before
// ticking the scene.
//
//	{"steps": [
//	  {"action": "spawn", "effect": "confetti", "x": 320, "y": 440},
//	  {"action": "wait", "frames": 30},
//	  {"action": "snapshot", "label": "mid-air"},
//	  {"action": "clear"}
//	]}
//
// Effects are "confetti", "sparkles" or a name from the effects file.
type Runner struct {
	steps     []scriptStep
	effects   *File
	snapshot  func(label string)
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script. Effect names are checked against the
// templates and effects, which may be nil.
func LoadScript(data []byte, effects *File) (*Runner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w: no steps", party.ErrInvalidConfig)
	}
	r := &Runner{steps: s.Steps, effects: effects}
	for i, st := range s.Steps {
		switch st.Action {
		case "spawn":
			if _, err := r.config(st); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		case "wait", "snapshot", "clear":
		default:
			return nil, fmt.Errorf("parse script: step %d: %w: unknown action %q", i, party.ErrInvalidConfig, st.Action)
		}
	}
	return r, nil
}

// SetSnapshotFunc sets the callback for snapshot steps, typically an
// imagerender.Renderer's Snapshot method.
func (r *Runner) SetSnapshotFunc(fn func(label string)) {
	r.snapshot = fn
}

// Done reports whether all steps have been executed.
func (r *Runner) Done() bool {
	return r.done
}

// Step advances the script by one frame.
func (r *Runner) Step(scene *party.Scene) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "spawn":
		cfg, err := r.config(st)
		if err != nil {
			return err
		}
		if _, err := scene.CreateEmitter(cfg); err != nil {
			return fmt.Errorf("spawn %s: %w", st.Effect, err)
		}
	case "snapshot":
		if r.snapshot != nil {
			r.snapshot(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "clear":
		for _, e := range append([]*party.Emitter(nil), scene.Emitters()...) {
			scene.RemoveEmitter(e)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

// config builds the emitter a spawn step places at (X, Y).
func (r *Runner) config(st scriptStep) (party.EmitterConfig, error) {
	at := party.PointSource(st.X, st.Y)
	switch st.Effect {
	case "confetti":
		return Confetti(at, ConfettiOptions{}), nil
	case "sparkles":
		return Sparkles(at, SparklesOptions{}), nil
	}
	if r.effects != nil {
		if e, ok := r.effects.Lookup(st.Effect); ok {
			cfg, err := e.Config()
			if err != nil {
				return cfg, err
			}
			cfg.Shape.Source = at
			return cfg, nil
		}
	}
	return party.EmitterConfig{}, fmt.Errorf("%w: unknown effect %q", party.ErrInvalidConfig, st.Effect)
}
