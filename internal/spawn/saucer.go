package spawn

import (
	"math/rand"

	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/object"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// patrolling adapts a saucer to Member so the generator drives its patrol.
type patrolling struct {
	*object.Saucer
	rng *rand.Rand
}

func (p patrolling) Advance() bool { return p.Patrol(p.rng) }

// SaucerGenerator owns the saucer pool plus the drones and shots the
// saucers launch.
type SaucerGenerator struct {
	saucers *Generator[patrolling]
	drones  Pool[*object.Drone]
	shots   Pool[*object.EnemyProjectile]
	rng     *rand.Rand

	DroneChance float64 // Per eligible saucer and tick
}

// NewSaucerGenerator creates the saucer pool for level and difficulty.
func NewSaucerGenerator(env lifecycle.Env, rng *rand.Rand, level, difficulty int, board Scoreboard) *SaucerGenerator {
	recipe := Recipe[patrolling]{
		Base:          config.SaucerBase,
		PerDifficulty: config.SaucerPerDifficulty,
		Growth:        func(int) int { return config.SaucerGrowth },
		Max:           config.SaucerMaxCount,
		Spawn: func(level, difficulty, _ int) patrolling {
			return patrolling{Saucer: object.NewSaucer(env, rng, level, difficulty), rng: rng}
		},
	}
	return &SaucerGenerator{
		saucers:     NewGenerator(recipe, level, difficulty, board),
		rng:         rng,
		DroneChance: config.DroneChance,
	}
}

// Tick advances saucers, drones and shots. Saucers near the planet may
// launch drones and any saucer may fire at one of targets. It returns true
// only when every saucer and drone is gone.
func (g *SaucerGenerator) Tick(gameActive bool, targets []physics.Vec2) bool {
	saucersDone := g.saucers.Tick(gameActive)

	g.saucers.Each(func(s patrolling) {
		if s.CanLaunchDrone() && g.rng.Float64() < g.DroneChance {
			g.drones.Add(s.LaunchDrone())
		}
		if shot := s.Think(g.rng, targets); shot != nil {
			g.shots.Add(shot)
		}
	})

	dronesDone := g.drones.Tick(func(d *object.Drone) {
		if gameActive {
			g.saucers.award(d.Points())
		}
	})
	// Shots are worth nothing.
	g.shots.Tick(nil)

	return saucersDone && dronesDone
}

// AdvanceLevel grows and refills the saucer pool.
func (g *SaucerGenerator) AdvanceLevel(newLevel int, gameActive bool) {
	g.saucers.AdvanceLevel(newLevel, gameActive)
}

// MaxCount returns the saucer pool's target size.
func (g *SaucerGenerator) MaxCount() int { return g.saucers.MaxCount() }

// Saucers returns the number of live saucers.
func (g *SaucerGenerator) Saucers() int { return g.saucers.Len() }

// Drones returns the number of live drones.
func (g *SaucerGenerator) Drones() int { return g.drones.Len() }

// Destroy ends every saucer, drone and shot without explosions.
func (g *SaucerGenerator) Destroy() {
	g.saucers.Each(func(p patrolling) { p.Destroy() })
	g.drones.Each(func(d *object.Drone) { d.Destroy() })
	g.shots.Each(func(s *object.EnemyProjectile) { s.Destroy() })
}

// EachSaucer calls fn for every live saucer.
func (g *SaucerGenerator) EachSaucer(fn func(*object.Saucer)) {
	g.saucers.Each(func(p patrolling) { fn(p.Saucer) })
}
