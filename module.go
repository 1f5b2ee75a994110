package party

import "fmt"

// Module transforms one particle in place. Emitters apply their modules once
// per live particle per tick, after physics, in list order.
type Module interface {
	Apply(p *Particle)
}

// ModuleFunc adapts a function to a Module.
type ModuleFunc func(p *Particle)

// Apply calls f.
func (f ModuleFunc) Apply(p *Particle) { f(p) }

// Custom wraps an arbitrary callback as a Module.
func Custom(fn func(p *Particle)) Module {
	return ModuleFunc(fn)
}

// Factor selects the scalar a module's driver is evaluated at.
type Factor uint8

const (
	FactorLifetime         Factor = iota // seconds lived so far
	FactorRelativeLifetime               // fraction of the initial lifetime lived, in [0, 1]
	FactorSize                           // current size
)

// String returns the factor's name.
func (f Factor) String() string {
	switch f {
	case FactorLifetime:
		return "lifetime"
	case FactorRelativeLifetime:
		return "relativeLifetime"
	case FactorSize:
		return "size"
	}
	return fmt.Sprintf("Factor(%d)", uint8(f))
}

// Of computes the factor for p.
func (f Factor) Of(p *Particle) float64 {
	switch f {
	case FactorRelativeLifetime:
		return p.RelativeElapsed()
	case FactorSize:
		return p.Size
	default:
		return p.Elapsed()
	}
}

// Driver produces a property value from a driving factor.
type Driver[T any] interface {
	Drive(factor float64, p *Particle) T
}

type constDriver[T any] struct {
	value T
}

func (d constDriver[T]) Drive(float64, *Particle) T { return d.value }

// Const returns a Driver that ignores the factor.
func Const[T any](v T) Driver[T] {
	return constDriver[T]{value: v}
}

// DriverFunc computes a property value from the factor and the particle.
type DriverFunc[T any] func(factor float64, p *Particle) T

// Drive calls f.
func (f DriverFunc[T]) Drive(factor float64, p *Particle) T { return f(factor, p) }

// Property describes a particle field a module can drive.
type Property[T any] struct {
	name    string
	set     func(p *Particle, v T)
	initial func(p *Particle) T // nil when the particle keeps no snapshot
	combine func(initial, v T) T
}

// Name returns the property's name.
func (p Property[T]) Name() string { return p.name }

// Drivable particle properties. Size and Rotation keep an initial snapshot
// and support relative mode: size multiplies it, rotation adds to it.
var (
	PropSize = Property[float64]{
		name:    "size",
		set:     func(p *Particle, v float64) { p.Size = v },
		initial: (*Particle).InitialSize,
		combine: func(initial, v float64) float64 { return initial * v },
	}
	PropRotation = Property[Vector]{
		name:    "rotation",
		set:     func(p *Particle, v Vector) { p.Rotation = v },
		initial: (*Particle).InitialRotation,
		combine: Vector.Add,
	}
	PropOpacity = Property[float64]{
		name: "opacity",
		set:  func(p *Particle, v float64) { p.Opacity = v },
	}
	PropColor = Property[Color]{
		name: "color",
		set:  func(p *Particle, v Color) { p.Color = v },
	}
	PropVelocity = Property[Vector]{
		name: "velocity",
		set:  func(p *Particle, v Vector) { p.Velocity = v },
	}
	PropLocation = Property[Vector]{
		name: "location",
		set:  func(p *Particle, v Vector) { p.Location = v },
	}
)

// ModuleBuilder assembles a driven module step by step:
//
//	m, err := party.Drive(party.PropSize).
//		By(spline).
//		Through(party.FactorRelativeLifetime).
//		Relative().
//		Build()
//
// The factor defaults to FactorLifetime and values are assigned absolutely
// unless Relative is called.
type ModuleBuilder[T any] struct {
	prop     Property[T]
	driver   Driver[T]
	factor   Factor
	relative bool
}

// Drive starts building a module for prop.
func Drive[T any](prop Property[T]) *ModuleBuilder[T] {
	return &ModuleBuilder[T]{prop: prop, factor: FactorLifetime}
}

// By sets the driver. Splines, Const values and DriverFuncs all qualify.
func (b *ModuleBuilder[T]) By(d Driver[T]) *ModuleBuilder[T] {
	b.driver = d
	return b
}

// Through sets the driving factor.
func (b *ModuleBuilder[T]) Through(f Factor) *ModuleBuilder[T] {
	b.factor = f
	return b
}

// Relative applies the driven value on top of the particle's initial value
// instead of replacing it.
func (b *ModuleBuilder[T]) Relative() *ModuleBuilder[T] {
	b.relative = true
	return b
}

// Build validates the configuration and returns the module.
func (b *ModuleBuilder[T]) Build() (Module, error) {
	if b.prop.set == nil {
		return nil, fmt.Errorf("%w: module has no target property", ErrInvalidConfig)
	}
	if b.driver == nil {
		return nil, fmt.Errorf("drive %s: %w", b.prop.name, ErrNoDriver)
	}
	if b.factor > FactorSize {
		return nil, fmt.Errorf("drive %s: %w: unknown factor %s", b.prop.name, ErrInvalidConfig, b.factor)
	}
	if b.relative && (b.prop.initial == nil || b.prop.combine == nil) {
		return nil, fmt.Errorf("drive %s relatively: %w", b.prop.name, ErrNoInitialValue)
	}
	return &drivenModule[T]{
		prop:     b.prop,
		driver:   b.driver,
		factor:   b.factor,
		relative: b.relative,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *ModuleBuilder[T]) MustBuild() Module {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

type drivenModule[T any] struct {
	prop     Property[T]
	driver   Driver[T]
	factor   Factor
	relative bool
}

func (m *drivenModule[T]) Apply(p *Particle) {
	v := m.driver.Drive(m.factor.Of(p), p)
	if m.relative {
		v = m.prop.combine(m.prop.initial(p), v)
	}
	m.prop.set(p, v)
}

// SizeOverLifetime scales the initial size by d evaluated at the relative
// lifetime.
func SizeOverLifetime(d Driver[float64]) Module {
	return Drive(PropSize).By(d).Through(FactorRelativeLifetime).Relative().MustBuild()
}

// SizeBySize scales the initial size by d evaluated at the current size.
func SizeBySize(d Driver[float64]) Module {
	return Drive(PropSize).By(d).Through(FactorSize).Relative().MustBuild()
}

// RotationOverLifetime adds d, evaluated at the seconds lived, to the initial
// rotation.
func RotationOverLifetime(d Driver[Vector]) Module {
	return Drive(PropRotation).By(d).Through(FactorLifetime).Relative().MustBuild()
}

// OpacityOverLifetime assigns d evaluated at the relative lifetime.
func OpacityOverLifetime(d Driver[float64]) Module {
	return Drive(PropOpacity).By(d).Through(FactorRelativeLifetime).MustBuild()
}

// ColorOverLifetime assigns d evaluated at the relative lifetime.
func ColorOverLifetime(d Driver[Color]) Module {
	return Drive(PropColor).By(d).Through(FactorRelativeLifetime).MustBuild()
}
