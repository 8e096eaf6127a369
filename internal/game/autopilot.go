package game

import (
	"math"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// hostileKinds are the sprite kinds the autopilot shoots at.
var hostileKinds = map[string]bool{
	collision.CategoryAsteroid.String():        true,
	collision.CategorySaucer.String():          true,
	collision.CategoryDrone.String():           true,
	collision.CategoryEnemyProjectile.String(): true,
}

// Autopilot plays a session on its own. It drives attract mode and the
// spectator stream.
type Autopilot struct {
	// ThreatRadius is how close a hostile may come before the shield goes up.
	ThreatRadius float64
}

// NewAutopilot returns an autopilot with default tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{ThreatRadius: config.ShieldRadius + 1.5}
}

// Next picks the command for the tick after snap.
func (a *Autopilot) Next(snap *Snapshot) Command {
	var cmd Command
	if snap == nil || snap.GameOver {
		return cmd
	}

	var (
		target   *physics.Vec2
		bestDist float64
		threat   bool
	)
	for _, sp := range snap.Sprites {
		if !hostileKinds[sp.Kind] || !sp.Active {
			continue
		}
		p := physics.Vec2{X: sp.X, Y: sp.Y}
		d := p.Len()
		if d < a.ThreatRadius {
			threat = true
		}
		if d <= config.ShieldRadius || !inView(p) {
			continue
		}
		if target == nil || d < bestDist {
			target, bestDist = &p, d
		}
	}

	if threat != snap.HUD.ShieldRaised {
		if !threat || snap.HUD.ShieldEnergy >= config.ShieldRaiseEnergy {
			cmd.ToggleShield = true
		}
	}
	if target != nil {
		cmd.Aim = target
		cmd.Fire = true
	}
	return cmd
}

func inView(p physics.Vec2) bool {
	return math.Abs(p.X) <= config.WorldHalfWidth && math.Abs(p.Y) <= config.WorldHalfHeight
}
