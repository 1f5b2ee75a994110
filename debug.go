package party

import (
	"log/slog"
	"time"
)

// DebugStats holds per-frame timing and population metrics.
// Only populated when the scene is in debug mode.
type DebugStats struct {
	tickTime      time.Duration
	renderTime    time.Duration
	emitterCount  int
	particleCount int
}

// TickTime returns the time spent ticking emitters.
func (d DebugStats) TickTime() time.Duration { return d.tickTime }

// RenderTime returns the time spent presenting the frame.
func (d DebugStats) RenderTime() time.Duration { return d.renderTime }

// Emitters returns the number of live emitters after the tick.
func (d DebugStats) Emitters() int { return d.emitterCount }

// Particles returns the number of live particles after the tick.
func (d DebugStats) Particles() int { return d.particleCount }

// Stats returns the stats of the most recent frame. All zero unless debug
// mode is enabled.
func (s *Scene) Stats() DebugStats {
	return s.stats
}

// debugLog writes the frame stats at debug level.
func (s *Scene) debugLog(stats DebugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("party: frame",
		slog.Duration("tick", stats.tickTime),
		slog.Duration("render", stats.renderTime),
		slog.Duration("total", stats.tickTime+stats.renderTime),
		slog.Int("emitters", stats.emitterCount),
		slog.Int("particles", stats.particleCount))
}
