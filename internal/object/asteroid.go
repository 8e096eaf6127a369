package object

import (
	"math/rand"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	}
	return "unknown"
}

func asteroidKind(name string, radius float64, points int, blast lifecycle.BlastSpec) lifecycle.Kind {
	return lifecycle.Kind{
		Name:     name,
		Category: collision.CategoryAsteroid,
		Radius:   radius,
		Evict:    true,
		Points:   points,
		Blast:    blast,
		OnArrive: lifecycle.ArriveDetonate,
		Ignores: func(other collision.Category) bool {
			return other == collision.CategoryAsteroid || other.Bandit() ||
				other == collision.CategoryEnemyProjectile
		},
	}
}

// Smaller rocks are faster to pass and harder to hit, so they are worth more.
var asteroidKinds = map[AsteroidSize]*lifecycle.Kind{
	AsteroidSmall:  ptr(asteroidKind("small asteroid", config.AsteroidRadiusSmall, config.ScoreAsteroidSmall, smallBlast)),
	AsteroidMedium: ptr(asteroidKind("medium asteroid", config.AsteroidRadiusMedium, config.ScoreAsteroidMedium, defaultBlast)),
	AsteroidLarge:  ptr(asteroidKind("large asteroid", config.AsteroidRadiusLarge, config.ScoreAsteroidLarge, defaultBlast)),
}

func ptr[T any](v T) *T { return &v }

// Asteroid is a rock falling from the spawn ring toward the planet.
type Asteroid struct {
	*lifecycle.Body
	Size     AsteroidSize
	Angle    float64   // Current rotation angle
	Spin     float64   // Radians per tick
	Vertices []float64 // Vertex distances from center (for irregular shape)
	path     *physics.Path
}

// NewAsteroid creates an asteroid on the spawn ring aimed at the planet. It
// waits delay ticks before it starts to move.
func NewAsteroid(env lifecycle.Env, rng *rand.Rand, level, difficulty, delay int) *Asteroid {
	size := AsteroidSize(1 + rng.Intn(3))
	kind := asteroidKinds[size]

	origin := physics.Polar(randomAngle(rng), config.SpawnRing)
	// Aim anywhere on the planet's disc so rocks do not all converge on one point.
	dest := physics.Polar(randomAngle(rng), rng.Float64()*config.PlanetRadius)

	path := physics.NewPath(origin, dest, config.AsteroidSpeed+rng.Float64()*config.AsteroidSpeedJitter)
	path.Delay = delay
	path.Boost(LevelFactor(level, difficulty))

	a := &Asteroid{
		Body:     lifecycle.NewBody(kind, env, origin, path),
		Size:     size,
		Angle:    randomAngle(rng),
		Spin:     (rng.Float64() - 0.5) * 0.04,
		Vertices: randomOutline(rng, kind.Radius),
		path:     path,
	}
	a.Attach(a)
	return a
}

// Outline implements the render shape used for irregular rocks.
func (a *Asteroid) Outline() (angle float64, vertices []float64) {
	return a.Angle, a.Vertices
}

// Advance rotates the rock and moves it along its path.
func (a *Asteroid) Advance() bool {
	if a.State() == lifecycle.Alive {
		a.Angle += a.Spin
	}
	return a.Body.Advance()
}

// Path returns the asteroid's trajectory.
func (a *Asteroid) Path() *physics.Path { return a.path }
