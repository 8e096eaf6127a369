// Package object defines the concrete entities of a session. Each kind is a
// lifecycle.Kind table plus a little per-kind behavior.
package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Launcher is a player installation that can fire projectiles.
type Launcher interface {
	CanFire() bool
	Fire(target physics.Vec2) *Projectile
	Position() physics.Vec2
}

// LevelFactor is the speed boost applied to hostile paths at spawn time.
// Both the level and the difficulty push it up.
func LevelFactor(level, difficulty int) float64 {
	return float64(level + difficulty)
}

func ignoreAll(collision.Category) bool { return true }

// Player installations are only hurt by hostile entities.
func ignoreFriendly(other collision.Category) bool { return !other.Hostile() }

// Hostile craft pass through rocks and through blasts they did not cause.
func ignoreRocks(other collision.Category) bool {
	return other == collision.CategoryAsteroid || other == collision.CategoryHostileExplosion
}

var defaultBlast = lifecycle.BlastSpec{
	Radius: config.BlastRadius,
	Grow:   config.BlastGrow,
	Fade:   config.BlastFade,
}

var smallBlast = lifecycle.BlastSpec{
	Radius: config.SmallBlastRadius,
	Grow:   config.SmallBlastGrow,
	Fade:   config.SmallBlastFade,
}

// Kind tables, shared by every entity of the kind.
var (
	SaucerKind = lifecycle.Kind{
		Name:     "saucer",
		Category: collision.CategorySaucer,
		Radius:   config.SaucerRadius,
		Evict:    true,
		Points:   config.ScoreSaucer,
		Blast:    defaultBlast,
		OnArrive: lifecycle.ArriveStop,
		Ignores:  ignoreRocks,
	}
	DroneKind = lifecycle.Kind{
		Name:     "drone",
		Category: collision.CategoryDrone,
		Radius:   config.DroneRadius,
		Evict:    true,
		Points:   config.ScoreDrone,
		Blast:    smallBlast,
		OnArrive: lifecycle.ArriveDetonate,
		Ignores:  ignoreRocks,
	}
	ProjectileKind = lifecycle.Kind{
		Name:     "projectile",
		Category: collision.CategoryProjectile,
		Radius:   config.ProjectileRadius,
		Evict:    true,
		Blast: lifecycle.BlastSpec{
			Radius: config.ProjectileBlastRadius,
			Grow:   config.BlastGrow,
			Fade:   config.BlastFade,
		},
		OnArrive: lifecycle.ArriveDetonate,
		Ignores:  ignoreFriendly,
	}
	EnemyProjectileKind = lifecycle.Kind{
		Name:     "enemy-projectile",
		Category: collision.CategoryEnemyProjectile,
		Radius:   config.EnemyProjectileRadius,
		Evict:    true,
		Blast:    smallBlast,
		OnArrive: lifecycle.ArriveDetonate,
		Ignores:  ignoreRocks,
	}
	BaseKind = lifecycle.Kind{
		Name:        "base",
		Category:    collision.CategoryBase,
		Radius:      config.BaseRadius,
		Passive:     true,
		Regenerable: true,
		Blast:       defaultBlast,
		Ignores:     ignoreFriendly,
	}
	SatelliteKind = lifecycle.Kind{
		Name:        "satellite",
		Category:    collision.CategorySatellite,
		Radius:      config.SatelliteRadius,
		Passive:     true,
		Regenerable: true,
		Blast:       smallBlast,
		Ignores:     ignoreFriendly,
	}
	PlanetKind = lifecycle.Kind{
		Name:     "planet",
		Category: collision.CategoryPlanet,
		Radius:   config.PlanetRadius,
		Passive:  true,
		Ignores:  ignoreAll,
	}
)

// randomOutline returns vertex distances for an irregular polygon of the
// given radius (8-12 vertices, each within ±30% of the radius).
func randomOutline(rng *rand.Rand, radius float64) []float64 {
	n := 8 + rng.Intn(5)
	v := make([]float64, n)
	for i := range v {
		v[i] = radius * (0.7 + rng.Float64()*0.6)
	}
	return v
}

// randomAngle returns an angle in [0, 2π).
func randomAngle(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// Clamp limits p to the visible world.
func Clamp(p physics.Vec2) physics.Vec2 {
	p.X = math.Max(-config.WorldHalfWidth, math.Min(config.WorldHalfWidth, p.X))
	p.Y = math.Max(-config.WorldHalfHeight, math.Min(config.WorldHalfHeight, p.Y))
	return p
}

// RandomInView returns a uniformly random point inside the visible world,
// shrunk by margin on every side.
func RandomInView(rng *rand.Rand, margin float64) physics.Vec2 {
	w := config.WorldHalfWidth - margin
	h := config.WorldHalfHeight - margin
	return physics.Vec2{
		X: (rng.Float64()*2 - 1) * w,
		Y: (rng.Float64()*2 - 1) * h,
	}
}
