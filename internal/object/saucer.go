package object

import (
	"math/rand"

	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Saucer is an enemy craft that patrols the map, shoots at installations and
// launches drones when it gets close to the planet.
type Saucer struct {
	*lifecycle.Body
	FireCooldown  int // Ticks until the next shot
	DroneCooldown int // Ticks until the next drone
	path          *physics.Path
	levelFactor   float64
}

// NewSaucer creates a saucer entering from a random screen edge.
func NewSaucer(env lifecycle.Env, rng *rand.Rand, level, difficulty int) *Saucer {
	origin := edgePoint(rng)
	lf := LevelFactor(level, difficulty)
	path := physics.NewPath(origin, RandomInView(rng, 2), config.SaucerSpeed)
	path.Boost(lf)

	s := &Saucer{
		Body:          lifecycle.NewBody(&SaucerKind, env, origin, path),
		FireCooldown:  config.SaucerFireCooldown,
		DroneCooldown: config.SaucerDroneCooldown,
		path:          path,
		levelFactor:   lf,
	}
	s.Attach(s)
	return s
}

// edgePoint picks a random point on the border of the visible world.
func edgePoint(rng *rand.Rand) physics.Vec2 {
	w, h := config.WorldHalfWidth, config.WorldHalfHeight
	switch rng.Intn(4) {
	case 0: // Top
		return physics.Vec2{X: (rng.Float64()*2 - 1) * w, Y: h}
	case 1: // Bottom
		return physics.Vec2{X: (rng.Float64()*2 - 1) * w, Y: -h}
	case 2: // Left
		return physics.Vec2{X: -w, Y: (rng.Float64()*2 - 1) * h}
	default: // Right
		return physics.Vec2{X: w, Y: (rng.Float64()*2 - 1) * h}
	}
}

// Patrol moves the saucer one tick and picks a new waypoint on arrival.
func (s *Saucer) Patrol(rng *rand.Rand) bool {
	if s.State() == lifecycle.Alive {
		if s.FireCooldown > 0 {
			s.FireCooldown--
		}
		if s.DroneCooldown > 0 {
			s.DroneCooldown--
		}
	}
	done := s.Body.Advance()
	if s.State() == lifecycle.Alive && s.path.Arrived() {
		s.path.Retarget(RandomInView(rng, 2))
	}
	return done
}

// Think decides whether to shoot this tick. It returns the shot, or nil.
func (s *Saucer) Think(rng *rand.Rand, targets []physics.Vec2) *EnemyProjectile {
	if s.State() != lifecycle.Alive || s.FireCooldown > 0 || len(targets) == 0 {
		return nil
	}
	if rng.Float64() >= config.SaucerShotChance {
		return nil
	}
	s.FireCooldown = config.SaucerFireCooldown
	target := targets[rng.Intn(len(targets))]
	return NewEnemyProjectile(s.Env(), s.Position(), target, s.levelFactor)
}

// CanLaunchDrone reports whether the saucer is alive, close enough to the
// planet and off cooldown.
func (s *Saucer) CanLaunchDrone() bool {
	return s.State() == lifecycle.Alive && s.DroneCooldown == 0 &&
		s.Position().Len() < config.DroneSpawnRadius
}

// LaunchDrone releases a drone diving at the planet and resets the cooldown.
func (s *Saucer) LaunchDrone() *Drone {
	s.DroneCooldown = config.SaucerDroneCooldown
	return NewDrone(s.Env(), s.Position(), physics.Vec2{}, s.levelFactor)
}

// Drone dives from its saucer straight at the planet.
type Drone struct {
	*lifecycle.Body
}

// NewDrone creates a drone flying from origin to target.
func NewDrone(env lifecycle.Env, origin, target physics.Vec2, levelFactor float64) *Drone {
	path := physics.NewPath(origin, target, config.DroneSpeed)
	path.Boost(levelFactor)
	d := &Drone{Body: lifecycle.NewBody(&DroneKind, env, origin, path)}
	d.Attach(d)
	return d
}
