package lifecycle

import (
	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Explosion is the collidable blast left by a destroyed body. A real blast
// can detonate other entities it touches; an inert one only shows. The
// category records who caused it so chained kills are credited correctly.
type Explosion struct {
	pos      physics.Vec2
	spec     BlastSpec
	category collision.Category
	step     int
}

// NewExplosion creates a blast at pos. Zero Grow is treated as one step.
// category is CategoryExplosion, CategoryHostileExplosion or
// CategoryInertExplosion; anything else is treated as hostile.
func NewExplosion(pos physics.Vec2, spec BlastSpec, category collision.Category) *Explosion {
	if !category.Blast() {
		category = collision.CategoryHostileExplosion
	}
	if spec.Grow < 1 {
		spec.Grow = 1
	}
	if spec.Fade < 0 {
		spec.Fade = 0
	}
	return &Explosion{pos: pos, spec: spec, category: category}
}

// Advance moves the animation one step. It returns true once finished.
func (e *Explosion) Advance() bool {
	if !e.Done() {
		e.step++
	}
	return e.Done()
}

// Done reports whether the blast has fully faded.
func (e *Explosion) Done() bool {
	return e.step >= e.spec.Grow+e.spec.Fade
}

// Scale grows linearly from 1/Grow to 1 and stays there while fading.
func (e *Explosion) Scale() float64 {
	s := float64(e.step+1) / float64(e.spec.Grow)
	if s > 1 {
		return 1
	}
	return s
}

// Opacity is 1 while growing, then falls linearly to 0.
func (e *Explosion) Opacity() float64 {
	fading := e.step - e.spec.Grow
	if fading < 0 {
		return 1
	}
	if e.spec.Fade == 0 || fading >= e.spec.Fade {
		return 0
	}
	return 1 - float64(fading)/float64(e.spec.Fade)
}

// Inert reports whether the blast was caused by the shield.
func (e *Explosion) Inert() bool { return e.category == collision.CategoryInertExplosion }

// Friendly reports whether the player caused the blast.
func (e *Explosion) Friendly() bool { return e.category == collision.CategoryExplosion }

func (e *Explosion) Active() bool           { return !e.Done() }
func (e *Explosion) Radius() float64        { return e.spec.Radius * e.Scale() }
func (e *Explosion) Position() physics.Vec2 { return e.pos }
func (e *Explosion) Name() string           { return "explosion" }
func (e *Explosion) Passive() bool          { return false }

func (e *Explosion) Category() collision.Category { return e.category }

// Impact is a no-op; blasts are never destroyed by what they touch.
func (e *Explosion) Impact(collision.Category) bool { return false }
