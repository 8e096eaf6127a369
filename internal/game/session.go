// Package game runs one play session: it owns the collision registry, the
// scene, every generator and the player's installations, and advances them
// in a fixed order once per tick.
package game

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/object"
	"github.com/tomz197/orbitdefense/internal/physics"
	"github.com/tomz197/orbitdefense/internal/savecode"
	"github.com/tomz197/orbitdefense/internal/score"
	"github.com/tomz197/orbitdefense/internal/sound"
	"github.com/tomz197/orbitdefense/internal/spawn"
)

// Options configure a new session.
type Options struct {
	Level      int   // Starting level, at least 1
	Difficulty int   // 0 to config.MaxDifficulty
	Seed       int64 // Zero picks a time-based seed
	Sound      sound.Player
	Load       *savecode.LoadData // Restores a saved game when set
	Log        *logrus.Entry
}

// Command is the player's input for one tick.
type Command struct {
	MoveX, MoveY float64       // Reticle steps, usually -1, 0 or 1
	Aim          *physics.Vec2 // Absolute reticle position, applied before MoveX/MoveY
	Fire         bool
	ToggleShield bool
}

// Session is a single game. It is not safe for concurrent use.
type Session struct {
	rng      *rand.Rand
	registry *collision.Registry
	scene    *Scene
	board    *score.Board
	env      lifecycle.Env
	log      *logrus.Entry

	planet     *object.Planet
	shield     *object.Shield
	commander  *object.Commander
	bases      *spawn.Generator[*object.Base]
	satellites *spawn.Generator[*object.Satellite]
	missiles   spawn.Pool[*object.Projectile]
	asteroids  *spawn.Generator[*object.Asteroid]
	saucers    *spawn.SaucerGenerator

	level      int
	difficulty int
	tick       uint64
	over       bool
	closed     bool
}

func clampOptions(opts Options) Options {
	if opts.Load != nil {
		opts.Level = opts.Load.Level
		opts.Difficulty = opts.Load.Difficulty
	}
	opts.Level = min(max(opts.Level, 1), config.MaxLevel)
	opts.Difficulty = min(max(opts.Difficulty, 0), config.MaxDifficulty)
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Log == nil {
		opts.Log = logger.Log.WithField("component", "game")
	}
	return opts
}

// NewSession builds the world for opts.
func NewSession(opts Options) *Session {
	opts = clampOptions(opts)

	s := &Session{
		rng:        rand.New(rand.NewSource(opts.Seed)),
		registry:   collision.NewRegistry(),
		scene:      NewScene(),
		board:      score.NewBoard(config.RegenEvery),
		log:        opts.Log,
		level:      opts.Level,
		difficulty: opts.Difficulty,
	}
	s.env = lifecycle.Env{Registry: s.registry, Surface: s.scene, Sound: opts.Sound}

	s.planet = object.NewPlanet(s.env)
	s.shield = object.NewShield(s.env)
	s.commander = object.NewCommander()

	// Installations never grow with the level; advancing a level only
	// regenerates destroyed ones.
	noGrowth := func(int) int { return 0 }
	s.bases = spawn.NewGenerator(spawn.Recipe[*object.Base]{
		Base:   config.BaseCount,
		Growth: noGrowth,
		Spawn:  func(_, _, i int) *object.Base { return object.NewBase(s.env, i) },
	}, 1, 0, nil)
	s.satellites = spawn.NewGenerator(spawn.Recipe[*object.Satellite]{
		Base:   config.SatelliteCount,
		Growth: noGrowth,
		Spawn:  func(_, _, i int) *object.Satellite { return object.NewSatellite(s.env, i) },
	}, 1, 0, nil)

	s.asteroids = spawn.NewGenerator(spawn.Recipe[*object.Asteroid]{
		Base:          config.AsteroidBase,
		PerDifficulty: config.AsteroidPerDifficulty,
		Max:           config.AsteroidMaxCount,
		Spawn: func(level, difficulty, _ int) *object.Asteroid {
			return object.NewAsteroid(s.env, s.rng, level, difficulty, s.rng.Intn(config.AsteroidMaxDelay))
		},
	}, s.level, s.difficulty, s.board)
	s.saucers = spawn.NewSaucerGenerator(s.env, s.rng, s.level, s.difficulty, s.board)

	if opts.Load != nil {
		s.restore(*opts.Load)
	}

	s.log.WithFields(logrus.Fields{
		"level":      s.level,
		"difficulty": s.difficulty,
		"seed":       opts.Seed,
		"restored":   opts.Load != nil,
	}).Debug("session started")
	return s
}

func (s *Session) restore(d savecode.LoadData) {
	s.board.SetScore(d.Score)
	s.bases.Each(func(b *object.Base) {
		if d.Bases[b.Index] {
			b.Deactivate()
		}
	})
	s.satellites.Each(func(sat *object.Satellite) {
		if d.Satellites[sat.Index] {
			sat.Deactivate()
		}
	})
}

// Tick advances the session one step: the command is applied, every entity
// moves, then the collision sweep runs against the new positions and the
// post-tick rules (regeneration, level advance, game over) are evaluated.
func (s *Session) Tick(cmd Command) {
	if s.closed {
		return
	}
	s.tick++
	active := !s.over

	if active {
		s.apply(cmd)
	}

	s.commander.Advance()
	s.shield.Advance()
	s.planet.Advance()
	s.bases.Tick(active)
	s.satellites.Tick(active)
	s.missiles.Tick(nil)
	s.asteroids.Tick(active)
	s.saucers.Tick(active, s.targets())

	s.registry.Tick(s.scene)

	if active {
		s.afterTick()
	}
}

func (s *Session) apply(cmd Command) {
	if cmd.Aim != nil {
		s.commander.MoveTo(*cmd.Aim)
	}
	if cmd.MoveX != 0 || cmd.MoveY != 0 {
		s.commander.Move(cmd.MoveX, cmd.MoveY)
	}
	if cmd.ToggleShield {
		s.shield.Toggle()
	}
	if cmd.Fire {
		if p := s.commander.Fire(s.launchers()); p != nil {
			s.missiles.Add(p)
		}
	}
}

// launchers lists every installation, bases first.
func (s *Session) launchers() []object.Launcher {
	var ls []object.Launcher
	s.bases.Each(func(b *object.Base) { ls = append(ls, b) })
	s.satellites.Each(func(sat *object.Satellite) { ls = append(ls, sat) })
	return ls
}

// targets lists the positions saucers shoot at: live installations.
func (s *Session) targets() []physics.Vec2 {
	var ts []physics.Vec2
	s.bases.Each(func(b *object.Base) {
		if b.State() == lifecycle.Alive {
			ts = append(ts, b.Position())
		}
	})
	s.satellites.Each(func(sat *object.Satellite) {
		if sat.State() == lifecycle.Alive {
			ts = append(ts, sat.Position())
		}
	})
	return ts
}

func (s *Session) afterTick() {
	for n := s.board.TakeMilestones(); n > 0; n-- {
		if !s.regenerateOne() {
			break
		}
	}

	if s.asteroids.Len() == 0 {
		s.advanceLevel()
	}

	if s.basesLost() {
		s.over = true
		s.log.WithFields(logrus.Fields{
			"score": s.board.Score(),
			"level": s.level,
			"tick":  s.tick,
		}).Info("game over")
	}
}

// regenerateOne restores the first destroyed installation, bases before
// satellites. It returns false when nothing needed restoring.
func (s *Session) regenerateOne() bool {
	done := false
	s.bases.Each(func(b *object.Base) {
		if !done && b.Regenerate() {
			done = true
		}
	})
	s.satellites.Each(func(sat *object.Satellite) {
		if !done && sat.Regenerate() {
			done = true
		}
	})
	if done {
		s.log.WithField("score", s.board.Score()).Debug("installation regenerated")
	}
	return done
}

// advanceLevel starts the next wave. Past config.MaxLevel the last wave
// repeats at the same size.
func (s *Session) advanceLevel() {
	if s.level < config.MaxLevel {
		s.level++
	}
	s.asteroids.AdvanceLevel(s.level, true)
	s.saucers.AdvanceLevel(s.level, true)
	s.bases.AdvanceLevel(s.level, true)
	s.satellites.AdvanceLevel(s.level, true)
	s.env.Sounds().LevelUp()
	s.log.WithFields(logrus.Fields{
		"level":     s.level,
		"asteroids": s.asteroids.MaxCount(),
		"saucers":   s.saucers.MaxCount(),
	}).Debug("level advanced")
}

func (s *Session) basesLost() bool {
	lost := true
	s.bases.Each(func(b *object.Base) {
		if b.State() != lifecycle.Inactive {
			lost = false
		}
	})
	return lost
}

// GameOver reports whether every base has been lost.
func (s *Session) GameOver() bool { return s.over }

// Score returns the current score.
func (s *Session) Score() int { return s.board.Score() }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Registry exposes the session's collision registry.
func (s *Session) Registry() *collision.Registry { return s.registry }

// Scene exposes the session's display list.
func (s *Session) Scene() *Scene { return s.scene }

// Save returns the progress record for the current state.
func (s *Session) Save() savecode.LoadData {
	d := savecode.LoadData{
		Score:      s.board.Score(),
		Level:      s.level,
		Difficulty: s.difficulty,
	}
	s.bases.Each(func(b *object.Base) {
		d.Bases[b.Index] = b.State() != lifecycle.Alive
	})
	s.satellites.Each(func(sat *object.Satellite) {
		d.Satellites[sat.Index] = sat.State() != lifecycle.Alive
	})
	return d
}

// Snapshot captures the session for rendering.
func (s *Session) Snapshot() *Snapshot {
	hud := HUD{
		Score:        s.board.Score(),
		Level:        s.level,
		Difficulty:   s.difficulty,
		ShieldRaised: s.shield.Raised(),
		ShieldEnergy: s.shield.Energy,
		Asteroids:    s.asteroids.Len(),
		Saucers:      s.saucers.Saucers(),
		Drones:       s.saucers.Drones(),
		Forbidden:    s.commander.Forbidden(),
	}
	s.bases.Each(func(b *object.Base) {
		hud.Bases[b.Index] = b.State() == lifecycle.Alive
	})
	s.satellites.Each(func(sat *object.Satellite) {
		hud.Satellites[sat.Index] = sat.State() == lifecycle.Alive
		hud.SatelliteEnergy[sat.Index] = sat.Energy
	})

	return &Snapshot{
		Tick:     s.tick,
		Sprites:  s.scene.Sprites(),
		ReticleX: s.commander.Pos.X,
		ReticleY: s.commander.Pos.Y,
		HUD:      hud,
		SaveCode: savecode.Encode(s.Save()),
		GameOver: s.over,
	}
}

// Close tears the session down: every entity is destroyed without an
// explosion and the registry is emptied. Further ticks are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.asteroids.Each(func(a *object.Asteroid) { a.Destroy() })
	s.missiles.Each(func(p *object.Projectile) { p.Destroy() })
	s.saucers.Destroy()
	s.bases.Each(func(b *object.Base) { b.Destroy() })
	s.satellites.Each(func(sat *object.Satellite) { sat.Destroy() })
	s.planet.Destroy()
	s.registry.Reset()
	s.scene.Clear()
	s.log.WithField("tick", s.tick).Debug("session closed")
}
