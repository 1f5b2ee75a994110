package party

// DespawnRule decides whether a particle should leave the simulation. It is
// evaluated after physics and modules, once per particle per tick.
type DespawnRule func(p *Particle) bool

// DespawnLifetime removes particles whose lifetime ran out.
func DespawnLifetime(p *Particle) bool {
	return p.Lifetime <= 0
}

// DespawnBounds removes particles that fell below the bottom edge of r while
// moving downward. Particles thrown out of the sides or the top come back
// under gravity, so those edges are left open.
func DespawnBounds(r Rect) DespawnRule {
	bottom := r.Y + r.Height
	return func(p *Particle) bool {
		return p.Velocity.Y() > 0 && p.Location.Y() > bottom
	}
}

// DespawnAny combines rules; the result matches if any rule does.
func DespawnAny(rules ...DespawnRule) DespawnRule {
	return func(p *Particle) bool {
		return anyRule(rules, p)
	}
}

func anyRule(rules []DespawnRule, p *Particle) bool {
	for _, rule := range rules {
		if rule(p) {
			return true
		}
	}
	return false
}
