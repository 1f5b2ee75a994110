package preset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/party"
)

const fountainYAML = `
effects:
  - name: fountain
    emitter:
      duration: 2
      loops: -1
      gravity: false
      maxParticles: 50
    emission:
      rate: 0
      bursts:
        - time: 0
          count: 4
        - time: 1
          count: [2, 3]
          probability: 0
      lifetime: {min: 3, max: 4}
      speed: 100
      colors: ["#ff0000"]
    shape:
      source:
        rect: {x: 10, y: 20, width: 30, height: 40}
      angle: [-100, -80]
    renderer:
      shapes: [circle]
      disableLighting: true
    modules:
      - type: opacityOverLifetime
        keys:
          - {time: 0, value: 1}
          - {time: 1, value: 0}
      - type: colorOverLifetime
        colors:
          - {time: 0, value: "#ffffff"}
          - {time: 1, value: "#000000"}
      - type: rotationOverLifetime
        rate: {z: 90}
  - name: pop
    template: sparkles
    emission:
      colors: ["#00ff00", "#0000ff"]
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(fountainYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Effects) != 2 {
		t.Fatalf("Effects = %d, want 2", len(f.Effects))
	}

	e, ok := f.Lookup("fountain")
	if !ok {
		t.Fatal("fountain not found")
	}
	cfg, err := e.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Emitter.Duration != 2 || cfg.Emitter.Loops != -1 || cfg.Emitter.UseGravity || cfg.Emitter.MaxParticles != 50 {
		t.Errorf("Emitter = %+v", cfg.Emitter)
	}
	if cfg.Emission.Rate != 0 {
		t.Errorf("Rate = %v, want 0", cfg.Emission.Rate)
	}
	if len(cfg.Emission.Bursts) != 2 {
		t.Fatalf("Bursts = %d, want 2", len(cfg.Emission.Bursts))
	}
	if len(cfg.Emitter.Modules) != 3 {
		t.Errorf("Modules = %d, want 3", len(cfg.Emitter.Modules))
	}
	if !slices.Equal(cfg.Renderer.Shapes, []string{"circle"}) || !cfg.Renderer.DisableLighting {
		t.Errorf("Renderer = %+v", cfg.Renderer)
	}

	em, err := party.NewEmitter(cfg, party.DefaultSettings())
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	em.Tick(0)
	if em.Len() != 4 {
		t.Fatalf("Len = %d, want 4", em.Len())
	}
	area := party.Rect{X: 10, Y: 20, Width: 30, Height: 40}
	for _, p := range em.Particles() {
		if !area.Contains(p.Location.X(), p.Location.Y()) {
			t.Errorf("Location %v outside %+v", p.Location, area)
		}
		if p.Velocity.Y() >= 0 {
			t.Errorf("Velocity %v does not point up", p.Velocity)
		}
		if p.InitialLifetime() < 3 || p.InitialLifetime() > 4 {
			t.Errorf("InitialLifetime = %v, want 3 to 4", p.InitialLifetime())
		}
	}

	// The second burst never passes its zero probability.
	em.Tick(1.5)
	if em.Len() != 4 {
		t.Errorf("Len = %d after gated burst, want 4", em.Len())
	}
}

func TestParseTemplate(t *testing.T) {
	f, err := Parse([]byte(fountainYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e, _ := f.Lookup("pop")
	cfg, err := e.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Emitter.UseGravity {
		t.Error("template gravity lost")
	}
	if !slices.Equal(cfg.Renderer.Shapes, []string{"star"}) {
		t.Errorf("Shapes = %v, want template star", cfg.Renderer.Shapes)
	}

	em, err := party.NewEmitter(cfg, party.DefaultSettings())
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	em.Tick(0)
	green, blue := party.Color{G: 1}, party.Color{B: 1}
	for _, p := range em.Particles() {
		if p.Color != green && p.Color != blue {
			t.Errorf("Color = %v, want green or blue", p.Color)
		}
	}
}

func TestLookupMissing(t *testing.T) {
	f, err := Parse([]byte(fountainYAML))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Lookup("nope"); ok {
		t.Error("Lookup found a missing effect")
	}
}

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Number
		wantErr bool
	}{
		{"scalar", "5", Number{5, 5}, false},
		{"sequence", "[1, 2.5]", Number{1, 2.5}, false},
		{"mapping", "{min: -3, max: 4}", Number{-3, 4}, false},
		{"three values", "[1, 2, 3]", Number{}, true},
		{"not a number", "fast", Number{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := yaml.Unmarshal([]byte(tt.in), &n)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%q) = %+v, want error", tt.in, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%q): %v", tt.in, err)
			}
			if n != tt.want {
				t.Errorf("Unmarshal(%q) = %+v, want %+v", tt.in, n, tt.want)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no effects", "effects: []", party.ErrInvalidConfig},
		{"missing name", "effects: [{emission: {rate: 1}}]", party.ErrInvalidConfig},
		{"duplicate name", "effects: [{name: a}, {name: a}]", party.ErrInvalidConfig},
		{"unknown template", "effects: [{name: a, template: fireworks}]", party.ErrInvalidConfig},
		{"zero duration", "effects: [{name: a, emitter: {duration: 0}}]", party.ErrInvalidConfig},
		{"zero loops", "effects: [{name: a, emitter: {loops: 0}}]", party.ErrInvalidConfig},
		{"negative rate", "effects: [{name: a, emission: {rate: -1}}]", party.ErrInvalidConfig},
		{"inverted speed", "effects: [{name: a, emission: {speed: [5, 1]}}]", party.ErrInvalidConfig},
		{"inverted burst", "effects: [{name: a, emission: {bursts: [{count: [5, 1]}]}}]", party.ErrInvalidConfig},
		{"bad color", `effects: [{name: a, emission: {colors: ["red"]}}]`, party.ErrInvalidConfig},
		{"two rotations", "effects: [{name: a, emission: {rotation: {z: 1}, randomRotation: 90}}]", party.ErrInvalidConfig},
		{"two sources", "effects: [{name: a, shape: {source: {point: {x: 1}, circle: {radius: 2}}}}]", party.ErrInvalidConfig},
		{"empty source", "effects: [{name: a, shape: {source: {}}}]", party.ErrInvalidConfig},
		{"unknown shape", "effects: [{name: a, renderer: {shapes: [hexagon]}}]", party.ErrUnknownShape},
		{"unknown module", "effects: [{name: a, modules: [{type: wobble}]}]", party.ErrInvalidConfig},
		{"module without keys", "effects: [{name: a, modules: [{type: sizeOverLifetime}]}]", party.ErrNoKeys},
		{"rotation without rate", "effects: [{name: a, modules: [{type: rotationOverLifetime}]}]", party.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEveryEffect(t *testing.T) {
	_, err := Parse([]byte("effects: [{name: a, template: x}, {name: b, template: y}]"))
	if err == nil {
		t.Fatal("want error")
	}
	for _, name := range []string{`"a"`, `"b"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention effect %s", err, name)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("effects: {")); err == nil {
		t.Error("want error for malformed YAML")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "effects.yaml")
	if err := os.WriteFile(path, []byte(fountainYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Effects) != 2 {
		t.Errorf("Effects = %d, want 2", len(f.Effects))
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("effects: []"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(path)
	if !errors.Is(err, party.ErrInvalidConfig) {
		t.Errorf("invalid file error = %v, want ErrInvalidConfig", err)
	}
	if err != nil && !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name %s", err, path)
	}
}
