package object

import (
	"math"

	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Planet is the indestructible body at the center of the world.
type Planet struct {
	*lifecycle.Body
}

// NewPlanet creates the planet at the origin.
func NewPlanet(env lifecycle.Env) *Planet {
	p := &Planet{Body: lifecycle.NewBody(&PlanetKind, env, physics.Vec2{}, nil)}
	p.Attach(p)
	return p
}

// Base is a missile launcher on the planet surface.
type Base struct {
	*lifecycle.Body
	Index    int
	Cooldown int
}

// BaseAngle returns the surface angle of base i.
func BaseAngle(i int) float64 {
	return math.Pi/4 + float64(i)*math.Pi/2
}

// NewBase creates base i of config.BaseCount, evenly spaced on the surface.
func NewBase(env lifecycle.Env, i int) *Base {
	pos := physics.Polar(BaseAngle(i), config.PlanetRadius)
	b := &Base{Body: lifecycle.NewBody(&BaseKind, env, pos, nil), Index: i}
	b.Attach(b)
	return b
}

// Advance counts the cooldown down and runs the lifecycle.
func (b *Base) Advance() bool {
	if b.Cooldown > 0 {
		b.Cooldown--
	}
	return b.Body.Advance()
}

// CanFire implements Launcher.
func (b *Base) CanFire() bool {
	return b.State() == lifecycle.Alive && b.Cooldown == 0
}

// Fire implements Launcher. Callers check CanFire first.
func (b *Base) Fire(target physics.Vec2) *Projectile {
	b.Cooldown = config.BaseFireCooldown
	b.Env().Sounds().Fire()
	return NewProjectile(b.Env(), b.Position(), target)
}

// Satellite orbits the planet and fires while it has energy.
type Satellite struct {
	*lifecycle.Body
	Index    int
	Energy   float64
	Cooldown int
	orbit    *physics.Orbit
}

// NewSatellite creates satellite i of config.SatelliteCount.
func NewSatellite(env lifecycle.Env, i int) *Satellite {
	orbit := &physics.Orbit{
		Radius:       config.SatelliteOrbit,
		Angle:        float64(i) * 2 * math.Pi / config.SatelliteCount,
		AngularSpeed: config.SatelliteAngularSpeed,
	}
	s := &Satellite{
		Body:   lifecycle.NewBody(&SatelliteKind, env, physics.Vec2{}, orbit),
		Index:  i,
		Energy: config.SatelliteEnergyMax,
		orbit:  orbit,
	}
	s.Attach(s)
	return s
}

// Advance recharges energy, counts the cooldown down and moves the satellite.
func (s *Satellite) Advance() bool {
	if s.Cooldown > 0 {
		s.Cooldown--
	}
	if s.State() == lifecycle.Alive {
		s.Energy = math.Min(config.SatelliteEnergyMax, s.Energy+config.SatelliteRecharge)
	}
	return s.Body.Advance()
}

// Regenerate restores the satellite with a full charge.
func (s *Satellite) Regenerate() bool {
	if !s.Body.Regenerate() {
		return false
	}
	s.Energy = config.SatelliteEnergyMax
	return true
}

// CanFire implements Launcher.
func (s *Satellite) CanFire() bool {
	return s.State() == lifecycle.Alive && s.Cooldown == 0 && s.Energy >= config.SatelliteFireEnergy
}

// Fire implements Launcher. Callers check CanFire first.
func (s *Satellite) Fire(target physics.Vec2) *Projectile {
	s.Cooldown = config.SatelliteFireCooldown
	s.Energy -= config.SatelliteShotCost
	s.Env().Sounds().Fire()
	return NewProjectile(s.Env(), s.Position(), target)
}
