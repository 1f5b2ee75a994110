// Package party is a lightweight, frame-driven particle-effects engine.
//
// Party simulates effects such as confetti and sparkles: emitters schedule
// particle births (continuous rate emission and time-keyed bursts), integrate
// velocity and gravity, run a pipeline of modifier modules over every
// particle, and hand a snapshot of each live particle to a [Renderer] once per
// frame. Rendering itself lives in adapter packages (ebitenrender,
// termrender, imagerender, stream); templates live in preset.
//
// # Quick start
//
//	scene := party.NewScene(party.DefaultSettings())
//	scene.SetRenderer(renderer)
//
//	cfg := party.DefaultEmitterConfig()
//	cfg.Emission.Rate = 0
//	cfg.Emission.Bursts = []party.Burst{{Time: 0, Count: party.IntRange(20, 40)}}
//	cfg.Shape.Source = party.PointSource(320, 240)
//	cfg.Shape.Angle = party.Skew(-90, 40)
//	cfg.Emission.InitialSpeed = party.Range{Min: 300, Max: 600}
//	if _, err := scene.CreateEmitter(cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// once per display refresh:
//	scene.Tick(delta)
//
// # Tick order
//
// Within one [Scene.Tick], every emitter advances its loop timer, fires due
// bursts, performs rate emission, then ticks each particle (lifetime, gravity,
// velocity, modules) and removes the ones matched by a despawning rule. Only
// after all emitters were ticked is the renderer called, inside a
// Begin/End bracket.
//
// # Variations and drivers
//
// Initial particle values are [Variation]s: a [Constant], a pick from
// [OneOf], a [Func], or a [Range]. Modules are built with [Drive] from a
// [Driver], which may be a constant ([Const]), a [Spline] or gradient, or a
// [DriverFunc] of the driving [Factor].
//
// # Threading
//
// A scene and its emitters are not safe for concurrent use. Tick them from a
// single goroutine, typically the host's frame callback.
package party
