package preset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/party"
)

// File is a YAML document holding named effects.
//
//	effects:
//	  - name: fountain
//	    emitter: {duration: 5, loops: -1, gravity: true}
//	    emission:
//	      rate: 40
//	      lifetime: {min: 1, max: 2}
//	      speed: [400, 600]
//	      colors: ["#ff5e5b", "#ffed66"]
//	    shape:
//	      source: {circle: {x: 320, y: 400, radius: 10}}
//	      angle: {min: -110, max: -70}
//	    modules:
//	      - type: opacityOverLifetime
//	        keys: [{time: 0, value: 1}, {time: 1, value: 0}]
type File struct {
	Effects []Effect `yaml:"effects"`
}

// Effect describes one emitter. Template, when set, starts from Confetti or
// Sparkles and the remaining fields override it.
type Effect struct {
	Name     string       `yaml:"name"`
	Template string       `yaml:"template"`
	Emitter  EmitterSpec  `yaml:"emitter"`
	Emission EmissionSpec `yaml:"emission"`
	Shape    ShapeSpec    `yaml:"shape"`
	Renderer RendererSpec `yaml:"renderer"`
	Modules  []ModuleSpec `yaml:"modules"`
}

// EmitterSpec mirrors party.EmitterOptions. Pointer fields keep the
// template or default value when omitted.
type EmitterSpec struct {
	Duration     *float64 `yaml:"duration"`
	Loops        *int     `yaml:"loops"`
	Gravity      *bool    `yaml:"gravity"`
	MaxParticles *int     `yaml:"maxParticles"`
}

// EmissionSpec mirrors party.EmissionOptions.
type EmissionSpec struct {
	Rate     *float64    `yaml:"rate"`
	Bursts   []BurstSpec `yaml:"bursts"`
	Lifetime *Number     `yaml:"lifetime"`
	Speed    *Number     `yaml:"speed"`
	Size     *Number     `yaml:"size"`
	// Rotation is a constant euler rotation in degrees, or RandomRotation
	// scales a random direction by that many degrees.
	Rotation       *VectorSpec `yaml:"rotation"`
	RandomRotation *float64    `yaml:"randomRotation"`
	// Colors picks one at random per particle.
	Colors []string `yaml:"colors"`
}

// BurstSpec mirrors party.Burst.
type BurstSpec struct {
	Time        float64 `yaml:"time"`
	Count       Number  `yaml:"count"`
	Probability *Number `yaml:"probability"`
}

// ShapeSpec mirrors party.ShapeOptions.
type ShapeSpec struct {
	Source *SourceSpec `yaml:"source"`
	Angle  *Number     `yaml:"angle"`
}

// SourceSpec selects exactly one spawn area.
type SourceSpec struct {
	Point  *VectorSpec   `yaml:"point"`
	Rect   *party.Rect   `yaml:"rect"`
	Circle *party.Circle `yaml:"circle"`
}

// RendererSpec mirrors party.RendererOptions.
type RendererSpec struct {
	Shapes           []string `yaml:"shapes"`
	DisableColor     bool     `yaml:"disableColor"`
	DisableOpacity   bool     `yaml:"disableOpacity"`
	DisableLighting  bool     `yaml:"disableLighting"`
	DisableTransform bool     `yaml:"disableTransform"`
}

// ModuleSpec names a built-in module and its spline keys.
//
// Types: sizeOverLifetime, opacityOverLifetime and sizeBySize take numeric
// Keys; colorOverLifetime takes Colors; rotationOverLifetime takes Rate in
// degrees per second.
type ModuleSpec struct {
	Type   string      `yaml:"type"`
	Smooth bool        `yaml:"smooth"`
	Keys   []KeySpec   `yaml:"keys"`
	Colors []ColorKey  `yaml:"colors"`
	Rate   *VectorSpec `yaml:"rate"`
}

// KeySpec is a numeric spline key.
type KeySpec struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// ColorKey is a gradient key with a hex color.
type ColorKey struct {
	Time  float64 `yaml:"time"`
	Value string  `yaml:"value"`
}

// VectorSpec is an {x, y, z} triple.
type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v VectorSpec) vector() party.Vector {
	return party.Vector{v.X, v.Y, v.Z}
}

// Number is a scalar or a range. It accepts `5`, `[1, 2]` or
// `{min: 1, max: 2}`.
type Number struct {
	Min, Max float64
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		n.Min, n.Max = v, v
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return err
		}
		if len(vs) != 2 {
			return fmt.Errorf("line %d: range needs 2 values, got %d", value.Line, len(vs))
		}
		n.Min, n.Max = vs[0], vs[1]
		return nil
	case yaml.MappingNode:
		var r struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := value.Decode(&r); err != nil {
			return err
		}
		n.Min, n.Max = r.Min, r.Max
		return nil
	}
	return fmt.Errorf("line %d: expected a number or a range", value.Line)
}

func (n Number) float() party.Variation[float64] {
	if n.Min == n.Max {
		return party.Constant(n.Min)
	}
	return party.Range{Min: n.Min, Max: n.Max}
}

func (n Number) int() party.Variation[int] {
	return party.IntRange(int(n.Min), int(n.Max))
}

// LoadFile reads and validates the effects file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates an effects document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse effects file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effects file: %w", err)
	}
	return &f, nil
}

// Validate checks every effect. It reports all problems at once.
func (f *File) Validate() error {
	if len(f.Effects) == 0 {
		return fmt.Errorf("%w: no effects", party.ErrInvalidConfig)
	}
	var errs []error
	seen := make(map[string]bool, len(f.Effects))
	for i := range f.Effects {
		e := &f.Effects[i]
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("effect %d: %w: missing name", i, party.ErrInvalidConfig))
			continue
		}
		if seen[e.Name] {
			errs = append(errs, fmt.Errorf("effect %q: %w: duplicate name", e.Name, party.ErrInvalidConfig))
		}
		seen[e.Name] = true
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("effect %q: %w", e.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the effect with the given name.
func (f *File) Lookup(name string) (*Effect, bool) {
	for i := range f.Effects {
		if f.Effects[i].Name == name {
			return &f.Effects[i], true
		}
	}
	return nil, false
}

// Validate checks an effect without building it.
func (e *Effect) Validate() error {
	_, err := e.Config()
	return err
}

// Config builds the emitter configuration the effect describes.
func (e *Effect) Config() (party.EmitterConfig, error) {
	var cfg party.EmitterConfig
	switch strings.ToLower(e.Template) {
	case "":
		cfg = party.DefaultEmitterConfig()
	case "confetti":
		cfg = Confetti(party.PointSource(0, 0), ConfettiOptions{})
	case "sparkles":
		cfg = Sparkles(party.PointSource(0, 0), SparklesOptions{})
	default:
		return cfg, fmt.Errorf("%w: unknown template %q", party.ErrInvalidConfig, e.Template)
	}

	if err := e.Emitter.apply(&cfg.Emitter); err != nil {
		return cfg, err
	}
	if err := e.Emission.apply(&cfg.Emission); err != nil {
		return cfg, err
	}
	if err := e.Shape.apply(&cfg.Shape); err != nil {
		return cfg, err
	}
	e.Renderer.apply(&cfg.Renderer)
	for _, name := range cfg.Renderer.Shapes {
		if _, err := party.LookupShape(name); err != nil {
			return cfg, err
		}
	}

	if len(e.Modules) > 0 {
		modules := make([]party.Module, 0, len(e.Modules))
		for i, ms := range e.Modules {
			m, err := ms.build()
			if err != nil {
				return cfg, fmt.Errorf("module %d: %w", i, err)
			}
			modules = append(modules, m)
		}
		cfg.Emitter.Modules = modules
	}
	return cfg, nil
}

func (s EmitterSpec) apply(o *party.EmitterOptions) error {
	if s.Duration != nil {
		if *s.Duration <= 0 {
			return fmt.Errorf("%w: duration must be positive, got %v", party.ErrInvalidConfig, *s.Duration)
		}
		o.Duration = *s.Duration
	}
	if s.Loops != nil {
		if *s.Loops == 0 {
			return fmt.Errorf("%w: loops must be non-zero", party.ErrInvalidConfig)
		}
		o.Loops = *s.Loops
	}
	if s.Gravity != nil {
		o.UseGravity = *s.Gravity
	}
	if s.MaxParticles != nil {
		if *s.MaxParticles <= 0 {
			return fmt.Errorf("%w: maxParticles must be positive, got %d", party.ErrInvalidConfig, *s.MaxParticles)
		}
		o.MaxParticles = *s.MaxParticles
	}
	return nil
}

func (s EmissionSpec) apply(o *party.EmissionOptions) error {
	if s.Rate != nil {
		if *s.Rate < 0 {
			return fmt.Errorf("%w: rate must not be negative, got %v", party.ErrInvalidConfig, *s.Rate)
		}
		o.Rate = *s.Rate
	}
	if len(s.Bursts) > 0 {
		o.Bursts = make([]party.Burst, len(s.Bursts))
		for i, b := range s.Bursts {
			if b.Count.Min < 0 || b.Count.Min > b.Count.Max {
				return fmt.Errorf("%w: burst %d count range invalid: min(%v) > max(%v)",
					party.ErrInvalidConfig, i, b.Count.Min, b.Count.Max)
			}
			o.Bursts[i] = party.Burst{Time: b.Time, Count: b.Count.int()}
			if b.Probability != nil {
				o.Bursts[i].Probability = b.Probability.float()
			}
		}
	}
	for _, field := range []struct {
		name string
		n    *Number
		dst  *party.Variation[float64]
	}{
		{"lifetime", s.Lifetime, &o.InitialLifetime},
		{"speed", s.Speed, &o.InitialSpeed},
		{"size", s.Size, &o.InitialSize},
	} {
		if field.n == nil {
			continue
		}
		if field.n.Min > field.n.Max {
			return fmt.Errorf("%w: %s range invalid: min(%v) > max(%v)",
				party.ErrInvalidConfig, field.name, field.n.Min, field.n.Max)
		}
		*field.dst = field.n.float()
	}
	switch {
	case s.Rotation != nil && s.RandomRotation != nil:
		return fmt.Errorf("%w: rotation and randomRotation are exclusive", party.ErrInvalidConfig)
	case s.Rotation != nil:
		o.InitialRotation = party.Constant(s.Rotation.vector())
	case s.RandomRotation != nil:
		scale := *s.RandomRotation
		o.InitialRotation = party.Func[party.Vector](func() party.Vector {
			return party.RandomUnitVector().Mul(scale)
		})
	}
	if len(s.Colors) > 0 {
		colors := make([]party.Color, len(s.Colors))
		for i, hex := range s.Colors {
			c, err := party.ColorFromHex(hex)
			if err != nil {
				return fmt.Errorf("%w: %w", party.ErrInvalidConfig, err)
			}
			colors[i] = c
		}
		o.InitialColor = party.OneOf(colors...)
	}
	return nil
}

func (s ShapeSpec) apply(o *party.ShapeOptions) error {
	if s.Source != nil {
		src, err := s.Source.source()
		if err != nil {
			return err
		}
		o.Source = src
	}
	if s.Angle != nil {
		if s.Angle.Min > s.Angle.Max {
			return fmt.Errorf("%w: angle range invalid: min(%v) > max(%v)",
				party.ErrInvalidConfig, s.Angle.Min, s.Angle.Max)
		}
		o.Angle = s.Angle.float()
	}
	return nil
}

func (s SourceSpec) source() (party.Source, error) {
	n := 0
	var src party.Source
	if s.Point != nil {
		n++
		src = party.PointSource(s.Point.X, s.Point.Y)
	}
	if s.Rect != nil {
		n++
		src = party.RectSource(*s.Rect)
	}
	if s.Circle != nil {
		n++
		src = party.CircleSource(*s.Circle)
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: source needs exactly one of point, rect or circle", party.ErrInvalidConfig)
	}
	return src, nil
}

func (s RendererSpec) apply(o *party.RendererOptions) {
	if len(s.Shapes) > 0 {
		o.Shapes = s.Shapes
	}
	o.DisableColor = o.DisableColor || s.DisableColor
	o.DisableOpacity = o.DisableOpacity || s.DisableOpacity
	o.DisableLighting = o.DisableLighting || s.DisableLighting
	o.DisableTransform = o.DisableTransform || s.DisableTransform
}

func (s ModuleSpec) build() (party.Module, error) {
	switch s.Type {
	case "sizeOverLifetime", "opacityOverLifetime", "sizeBySize":
		spline, err := s.numericSpline()
		if err != nil {
			return nil, err
		}
		switch s.Type {
		case "sizeOverLifetime":
			return party.SizeOverLifetime(spline), nil
		case "sizeBySize":
			return party.SizeBySize(spline), nil
		}
		return party.OpacityOverLifetime(spline), nil
	case "colorOverLifetime":
		keys := make([]party.Key[party.Color], len(s.Colors))
		for i, k := range s.Colors {
			c, err := party.ColorFromHex(k.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", party.ErrInvalidConfig, err)
			}
			keys[i] = party.At(k.Time, c)
		}
		g, err := party.NewGradient(keys...)
		if err != nil {
			return nil, err
		}
		return party.ColorOverLifetime(g), nil
	case "rotationOverLifetime":
		if s.Rate == nil {
			return nil, fmt.Errorf("%w: rotationOverLifetime needs a rate", party.ErrInvalidConfig)
		}
		rate := s.Rate.vector()
		return party.RotationOverLifetime(party.DriverFunc[party.Vector](func(t float64, _ *party.Particle) party.Vector {
			return rate.Mul(t)
		})), nil
	}
	return nil, fmt.Errorf("%w: unknown module type %q", party.ErrInvalidConfig, s.Type)
}

func (s ModuleSpec) numericSpline() (*party.Spline[float64], error) {
	keys := make([]party.Key[float64], len(s.Keys))
	for i, k := range s.Keys {
		keys[i] = party.At(k.Time, k.Value)
	}
	if s.Smooth {
		return party.NewSmoothSpline(keys...)
	}
	return party.NewNumericSpline(keys...)
}
