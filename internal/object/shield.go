package object

import (
	"math"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Shield is the dome around the planet. It stays registered for the whole
// session and only collides while raised. Hostiles that touch it are
// destroyed with an inert explosion; the shield itself only loses energy.
type Shield struct {
	env    lifecycle.Env
	raised bool
	Energy float64
}

// NewShield creates a lowered, fully charged shield and registers it.
func NewShield(env lifecycle.Env) *Shield {
	s := &Shield{env: env, Energy: config.ShieldEnergyMax}
	env.Register(s)
	return s
}

func (s *Shield) Active() bool                 { return s.raised }
func (s *Shield) Radius() float64              { return config.ShieldRadius }
func (s *Shield) Position() physics.Vec2       { return physics.Vec2{} }
func (s *Shield) Name() string                 { return "shield" }
func (s *Shield) Category() collision.Category { return collision.CategoryShield }
func (s *Shield) Passive() bool                { return true }

// Raised reports whether the shield is up.
func (s *Shield) Raised() bool { return s.raised }

// Impact drains energy for every hostile hit. Blasts wash over it. The
// shield is never evicted.
func (s *Shield) Impact(other collision.Category) bool {
	if !s.raised || !other.Hostile() || other.Blast() {
		return false
	}
	s.Energy -= config.ShieldHitCost
	if s.Energy <= 0 {
		s.Energy = 0
		s.Lower()
	}
	return false
}

// Toggle raises a lowered shield or lowers a raised one. It returns false
// when raising is refused for lack of energy.
func (s *Shield) Toggle() bool {
	if s.raised {
		s.Lower()
		return true
	}
	return s.Raise()
}

// Raise puts the shield up if it has enough energy.
func (s *Shield) Raise() bool {
	if s.raised || s.Energy < config.ShieldRaiseEnergy {
		return false
	}
	s.raised = true
	s.env.Show(s)
	s.env.Sounds().ShieldUp()
	return true
}

// Lower takes the shield down.
func (s *Shield) Lower() {
	if !s.raised {
		return
	}
	s.raised = false
	s.env.Hide(s)
	s.env.Sounds().ShieldDown()
}

// Advance drains energy while raised and recharges it while lowered.
func (s *Shield) Advance() {
	if !s.raised {
		s.Energy = math.Min(config.ShieldEnergyMax, s.Energy+config.ShieldRecharge)
		return
	}
	s.Energy -= config.ShieldDrain
	if s.Energy <= 0 {
		s.Energy = 0
		s.Lower()
	}
}
