// Package lifecycle implements the state machine shared by every destructible
// entity: Alive, then Exploding, then Removed or (for regenerable kinds)
// Inactive until regenerated.
package lifecycle

import (
	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/sound"
)

// State is an entity's lifecycle stage.
type State int

const (
	Alive State = iota
	Exploding
	Inactive
	Removed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Exploding:
		return "exploding"
	case Inactive:
		return "inactive"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// ArriveAction is what a body does when its mover reaches the destination.
type ArriveAction int

const (
	ArriveStop ArriveAction = iota
	ArriveDetonate
)

// BlastSpec shapes the explosion a body leaves behind.
type BlastSpec struct {
	Radius float64 // Full-size radius
	Grow   int     // Steps to reach full size
	Fade   int     // Steps to fade out after full size
}

// Kind is the per-kind behavior table. One Kind value is shared by every
// entity of that kind.
type Kind struct {
	Name        string
	Category    collision.Category
	Radius      float64
	Passive     bool
	Regenerable bool // Goes Inactive instead of Removed
	Evict       bool // Impact asks the registry to evict it from the surface
	Points      int
	Blast       BlastSpec
	OnArrive    ArriveAction

	// Ignores returns true for categories that do not hurt this kind.
	Ignores func(other collision.Category) bool
}

// Env bundles the session collaborators a body needs.
type Env struct {
	Registry *collision.Registry
	Surface  collision.Surface
	Sound    sound.Player
}

// Register adds c to the registry if there is one.
func (e Env) Register(c collision.Collidable) {
	if e.Registry != nil {
		e.Registry.Register(c)
	}
}

// Unregister removes c from the registry if there is one.
func (e Env) Unregister(c collision.Collidable) {
	if e.Registry != nil {
		e.Registry.Unregister(c)
	}
}

// Show displays c on the surface if there is one.
func (e Env) Show(c collision.Collidable) {
	if e.Surface != nil {
		e.Surface.Show(c)
	}
}

// Hide removes c from the surface if there is one.
func (e Env) Hide(c collision.Collidable) {
	if e.Surface != nil {
		e.Surface.Hide(c)
	}
}

// Sounds returns the sound player, never nil.
func (e Env) Sounds() sound.Player {
	if e.Sound == nil {
		return sound.Nop{}
	}
	return e.Sound
}
