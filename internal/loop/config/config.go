// Package config centralizes all tunable game parameters.
package config

import "time"

// Render area - the play field scales to fit the terminal up to this size.
const (
	MaxTermWidth  = 120 // Columns
	MaxTermHeight = 40  // Rows, 80 sub-pixels
	HUDRows       = 2   // Rows reserved below the play field
)

// World geometry in world units. The planet sits at the origin and the
// visible area spans ±WorldHalfWidth by ±WorldHalfHeight.
const (
	WorldHalfWidth  = 24.0
	WorldHalfHeight = 16.0
	SpawnRing       = 30.0 // Asteroids start on this circle, off screen

	PlanetRadius    = 2.0
	ShieldRadius    = 3.2
	BaseRadius      = 0.5
	BaseCount       = 4
	SatelliteRadius = 0.5
	SatelliteOrbit  = 5.0
	SatelliteCount  = 4
)

// Entity radii
const (
	AsteroidRadiusSmall   = 0.4
	AsteroidRadiusMedium  = 0.7
	AsteroidRadiusLarge   = 1.0
	SaucerRadius          = 0.8
	DroneRadius           = 0.4
	ProjectileRadius      = 0.2
	EnemyProjectileRadius = 0.2
)

// Motion, in world units (or radians) per tick
const (
	AsteroidSpeed         = 0.05
	AsteroidSpeedJitter   = 0.03 // Added uniformly at random
	AsteroidMaxDelay      = 600  // Ticks; staggers a wave's arrival
	SaucerSpeed           = 0.08
	DroneSpeed            = 0.12
	ProjectileSpeed       = 0.6
	EnemyProjectileSpeed  = 0.25
	SatelliteAngularSpeed = 0.01
	ReticleSpeed          = 0.5
)

// Explosions, in ticks
const (
	BlastRadius           = 1.5
	BlastGrow             = 12
	BlastFade             = 18
	ProjectileBlastRadius = 1.8
	SmallBlastRadius      = 0.8
	SmallBlastGrow        = 6
	SmallBlastFade        = 10
)

// Cooldowns, in ticks
const (
	CommanderFireCooldown = 6
	BaseFireCooldown      = 30
	SatelliteFireCooldown = 20
	SaucerFireCooldown    = 120
	SaucerDroneCooldown   = 180
)

// Energy
const (
	SatelliteEnergyMax  = 100.0
	SatelliteShotCost   = 25.0
	SatelliteRecharge   = 0.25 // Per tick
	SatelliteFireEnergy = 25.0 // Minimum energy to fire

	ShieldEnergyMax   = 100.0
	ShieldDrain       = 0.2 // Per tick while raised
	ShieldHitCost     = 10.0
	ShieldRecharge    = 0.1 // Per tick while lowered
	ShieldRaiseEnergy = 20.0
)

// Spawning
const (
	AsteroidBase          = 8
	AsteroidPerDifficulty = 2
	SaucerBase            = 1
	SaucerPerDifficulty   = 1
	SaucerGrowth          = 1
	DroneSpawnRadius      = 14.0 // Saucers closer than this to the planet may launch drones
	DroneChance           = 0.02 // Per eligible tick
	SaucerShotChance      = 0.05 // Per tick once the cooldown has expired
)

// Pool caps keep the pairwise collision sweep small at any level.
const (
	AsteroidMaxCount = 60
	SaucerMaxCount   = 6
)

// Scoring
const (
	ScoreAsteroidLarge  = 10
	ScoreAsteroidMedium = 20
	ScoreAsteroidSmall  = 30
	ScoreSaucer         = 100
	ScoreDrone          = 50
	RegenEvery          = 1000 // Score milestone that regenerates one installation
)

// Limits
const (
	MaxLevel      = 255
	MaxDifficulty = 15
)

// Leaderboard
const (
	TopScoreCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Spectator stream
const (
	SpectateBroadcastEvery = 4   // Server ticks between snapshots sent to watchers
	SpectateRestartTicks   = 180 // Ticks the final frame of a demo stays up before a new one starts
	SpectateDifficulty     = 2
	SpectateSendBuffer     = 16 // Frames queued per watcher before it is dropped
)
