package collision

// Category identifies what kind of entity a collidable is. Filter rules and
// impact handlers compare categories directly.
type Category int

const (
	CategoryAsteroid Category = iota
	CategorySaucer
	CategoryDrone
	CategoryProjectile
	CategoryEnemyProjectile
	CategoryShield
	CategoryExplosion      // Real blast caused by the player, chain-detonates
	CategoryInertExplosion // Shield hit, never collides
	CategoryBase
	CategorySatellite
	CategoryPlanet
	CategoryHostileExplosion // Real blast of a crash or enemy fire; kills score nothing
)

var categoryNames = [...]string{
	CategoryAsteroid:        "asteroid",
	CategorySaucer:          "saucer",
	CategoryDrone:           "drone",
	CategoryProjectile:      "projectile",
	CategoryEnemyProjectile: "enemy-projectile",
	CategoryShield:          "shield",
	CategoryExplosion:       "explosion",
	CategoryInertExplosion:  "inert-explosion",
	CategoryBase:            "base",
	CategorySatellite:       "satellite",
	CategoryPlanet:          "planet",

	CategoryHostileExplosion: "hostile-explosion",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Bandit reports whether c is an enemy craft.
func (c Category) Bandit() bool {
	return c == CategorySaucer || c == CategoryDrone
}

// Hostile reports whether c damages the player's installations.
func (c Category) Hostile() bool {
	switch c {
	case CategoryAsteroid, CategorySaucer, CategoryDrone, CategoryEnemyProjectile, CategoryHostileExplosion:
		return true
	}
	return false
}

// Friendly reports whether a kill by c is credited to the player.
func (c Category) Friendly() bool {
	switch c {
	case CategoryProjectile, CategoryExplosion, CategoryShield:
		return true
	}
	return false
}

// Blast reports whether c is any explosion category.
func (c Category) Blast() bool {
	return c == CategoryExplosion || c == CategoryInertExplosion || c == CategoryHostileExplosion
}

// RealBlast reports whether c is a collidable, non-inert explosion.
func (c Category) RealBlast() bool {
	return c == CategoryExplosion || c == CategoryHostileExplosion
}
