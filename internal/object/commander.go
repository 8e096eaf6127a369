package object

import (
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Commander is the player's targeting reticle. It is not collidable.
type Commander struct {
	Pos      physics.Vec2
	Cooldown int // Ticks until the next shot
}

// NewCommander creates a reticle just above the planet.
func NewCommander() *Commander {
	return &Commander{Pos: physics.Vec2{Y: config.ShieldRadius * 2}}
}

// Move shifts the reticle by (dx, dy) steps and keeps it inside the world.
func (c *Commander) Move(dx, dy float64) {
	c.Pos = Clamp(c.Pos.Add(physics.Vec2{X: dx, Y: dy}.Scale(config.ReticleSpeed)))
}

// MoveTo places the reticle at p, clamped to the world.
func (c *Commander) MoveTo(p physics.Vec2) {
	c.Pos = Clamp(p)
}

// Advance counts the fire cooldown down.
func (c *Commander) Advance() {
	if c.Cooldown > 0 {
		c.Cooldown--
	}
}

// Forbidden reports whether the reticle is inside the shield radius, where
// a detonation would hit the player's own installations.
func (c *Commander) Forbidden() bool {
	return physics.PointInCircle(c.Pos, physics.Vec2{}, config.ShieldRadius)
}

// CanFire reports whether a shot may be ordered this tick.
func (c *Commander) CanFire() bool {
	return c.Cooldown == 0 && !c.Forbidden()
}

// Fire orders a shot from the closest launcher able to fire. It returns nil
// when firing is refused or no launcher is ready.
func (c *Commander) Fire(launchers []Launcher) *Projectile {
	if !c.CanFire() {
		return nil
	}
	var best Launcher
	bestDist := 0.0
	for _, l := range launchers {
		if !l.CanFire() {
			continue
		}
		lp := l.Position()
		d := physics.DistanceSquared(lp.X, lp.Y, c.Pos.X, c.Pos.Y)
		if best == nil || d < bestDist {
			best, bestDist = l, d
		}
	}
	if best == nil {
		return nil
	}
	c.Cooldown = config.CommanderFireCooldown
	return best.Fire(c.Pos)
}
