package object

import (
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Projectile is a missile fired by the player. It flies to the reticle
// position and detonates there unless it hits something first.
type Projectile struct {
	*lifecycle.Body
	Target physics.Vec2
}

// NewProjectile creates a projectile travelling from origin to target.
func NewProjectile(env lifecycle.Env, origin, target physics.Vec2) *Projectile {
	path := physics.NewPath(origin, target, config.ProjectileSpeed)
	p := &Projectile{
		Body:   lifecycle.NewBody(&ProjectileKind, env, origin, path),
		Target: target,
	}
	p.Attach(p)
	return p
}

// EnemyProjectile is a shot fired by a saucer at an installation.
type EnemyProjectile struct {
	*lifecycle.Body
	Target physics.Vec2
}

// NewEnemyProjectile creates a shot travelling from origin to target.
func NewEnemyProjectile(env lifecycle.Env, origin, target physics.Vec2, levelFactor float64) *EnemyProjectile {
	path := physics.NewPath(origin, target, config.EnemyProjectileSpeed)
	path.Boost(levelFactor)
	p := &EnemyProjectile{
		Body:   lifecycle.NewBody(&EnemyProjectileKind, env, origin, path),
		Target: target,
	}
	p.Attach(p)
	return p
}
