package party

import (
	"log/slog"
	"slices"
	"time"
)

// DefaultGravity is the gravitational acceleration in pixels per second².
const DefaultGravity = 800.0

// Settings are the scene-wide values emitters consume. They replace global
// mutable state: each scene carries its own.
type Settings struct {
	// Gravity is the acceleration applied to emitters with UseGravity, in
	// pixels per second².
	Gravity float64
	// MaxParticles is a ceiling on every emitter's MaxParticles. Zero means
	// no ceiling.
	MaxParticles int
	// Bounds, when set, adds DespawnBounds to emitters that keep the default
	// despawning rules.
	Bounds *Rect
	// Debug collects per-frame stats and logs them at debug level.
	Debug bool
}

// DefaultSettings returns settings with DefaultGravity and no ceiling.
func DefaultSettings() Settings {
	return Settings{Gravity: DefaultGravity}
}

// EmitterEventType identifies an emitter lifecycle event.
type EmitterEventType uint8

const (
	EmitterAdded   EmitterEventType = iota // added to a scene
	EmitterExpired                         // ran all its loops and left the scene
	EmitterRemoved                         // removed from the scene before expiring
)

// String returns the event type's name.
func (t EmitterEventType) String() string {
	switch t {
	case EmitterAdded:
		return "added"
	case EmitterExpired:
		return "expired"
	case EmitterRemoved:
		return "removed"
	}
	return "unknown"
}

// EmitterEvent describes an emitter lifecycle change.
type EmitterEvent struct {
	Type      EmitterEventType
	EmitterID EmitterID
	// Particles is the live particle count at the time of the event.
	Particles int
	// Loops is the number of completed loops at the time of the event.
	Loops int
}

// EventSink receives emitter lifecycle events. When set on a Scene, events
// are forwarded as they happen, synchronously, from the ticking goroutine.
// A sink may add or remove emitters while handling an event.
type EventSink interface {
	EmitEvent(event EmitterEvent)
}

// Scene owns a list of emitters and drives them once per frame.
type Scene struct {
	settings Settings
	emitters []*Emitter
	renderer Renderer
	sink     EventSink
	debug    bool
	stats    DebugStats
	expired  []*Emitter
}

// NewScene creates an empty scene.
func NewScene(settings Settings) *Scene {
	return &Scene{
		settings: settings,
		debug:    settings.Debug,
	}
}

// Settings returns the scene's settings.
func (s *Scene) Settings() Settings {
	return s.settings
}

// SetRenderer sets the renderer presented with every frame. Nil disables
// rendering.
func (s *Scene) SetRenderer(r Renderer) {
	s.renderer = r
}

// SetEventSink sets the optional lifecycle event sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables per-frame stats. Stats are logged through
// Logger at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// CreateEmitter builds an emitter with the scene's settings and adds it.
func (s *Scene) CreateEmitter(cfg EmitterConfig) (*Emitter, error) {
	e, err := NewEmitter(cfg, s.settings)
	if err != nil {
		return nil, err
	}
	s.AddEmitter(e)
	return e, nil
}

// AddEmitter adds e to the scene. Emitters are ticked in the order they were
// added.
func (s *Scene) AddEmitter(e *Emitter) {
	s.emitters = append(s.emitters, e)
	s.emit(EmitterAdded, e)
}

// RemoveEmitter removes e from the scene, dropping its particles from the
// next frame on. It reports whether e was found.
func (s *Scene) RemoveEmitter(e *Emitter) bool {
	i := slices.Index(s.emitters, e)
	if i < 0 {
		return false
	}
	s.emitters = slices.Delete(s.emitters, i, i+1)
	s.emit(EmitterRemoved, e)
	Logger().Info("party: emitter removed", slog.Uint64("emitter", uint64(e.id)))
	return true
}

// Emitters returns the scene's emitters. The returned slice MUST NOT be
// mutated.
func (s *Scene) Emitters() []*Emitter {
	return s.emitters
}

// ParticleCount returns the number of live particles across all emitters.
func (s *Scene) ParticleCount() int {
	n := 0
	for _, e := range s.emitters {
		n += e.Len()
	}
	return n
}

// Tick advances every emitter by delta seconds, drops the ones that expired,
// and presents the frame to the renderer.
func (s *Scene) Tick(delta float64) {
	delta = sanitizeDelta(delta)

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	live := s.emitters[:0]
	for _, e := range s.emitters {
		e.Tick(delta)
		if e.IsExpired() {
			s.expired = append(s.expired, e)
			continue
		}
		live = append(live, e)
	}
	clear(s.emitters[len(live):])
	s.emitters = live

	// The sink may add or remove emitters, so expiry is published only after
	// the scene's list is settled.
	for i, e := range s.expired {
		s.emit(EmitterExpired, e)
		Logger().Info("party: emitter expired",
			slog.Uint64("emitter", uint64(e.id)),
			slog.Int("loops", e.currentLoop))
		s.expired[i] = nil
	}
	s.expired = s.expired[:0]

	if s.debug {
		s.stats.tickTime = time.Since(t0)
		t0 = time.Now()
	}

	s.Render()

	if s.debug {
		s.stats.renderTime = time.Since(t0)
		s.stats.emitterCount = len(s.emitters)
		s.stats.particleCount = s.ParticleCount()
		s.debugLog(s.stats)
	}
}

// Render presents every live particle to the renderer inside a Begin/End
// bracket. Tick calls it; call it directly to redraw without advancing time.
func (s *Scene) Render() {
	if s.renderer == nil {
		return
	}
	s.renderer.Begin()
	for _, e := range s.emitters {
		opts := &e.renderer
		for _, p := range e.particles {
			s.renderer.RenderParticle(p.Snapshot(), opts)
		}
	}
	s.renderer.End()
}

func (s *Scene) emit(t EmitterEventType, e *Emitter) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(EmitterEvent{
		Type:      t,
		EmitterID: e.id,
		Particles: len(e.particles),
		Loops:     e.currentLoop,
	})
}

// Clock turns frame timestamps into tick deltas in seconds.
//
// Large gaps are passed through unchanged, so rate emission catches up after
// the host was paused.
type Clock struct {
	last    time.Time
	started bool
}

// Delta returns the seconds since the previous call. The first call and any
// timestamp earlier than the previous one report 0.
func (c *Clock) Delta(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	if d < 0 {
		d = 0
	}
	c.last = now
	return d.Seconds()
}
