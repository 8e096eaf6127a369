package lifecycle

import (
	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// Body is a destructible collidable driven by a Kind table. Concrete entities
// embed *Body and add their own per-kind behavior.
type Body struct {
	kind  *Kind
	env   Env
	mover physics.Mover
	pos   physics.Vec2

	state    State
	active   bool
	blast    *Explosion
	friendly bool // Destroyed by the player
	owner    any
}

// NewBody creates an alive body at the mover's position, registers it and
// shows it. A nil mover keeps the body at pos.
func NewBody(kind *Kind, env Env, pos physics.Vec2, mover physics.Mover) *Body {
	if mover != nil {
		pos = mover.Position()
	}
	b := &Body{
		kind:   kind,
		env:    env,
		mover:  mover,
		pos:    pos,
		state:  Alive,
		active: true,
	}
	env.Register(b)
	env.Show(b)
	return b
}

func (b *Body) Active() bool                 { return b.active }
func (b *Body) Radius() float64              { return b.kind.Radius }
func (b *Body) Position() physics.Vec2       { return b.pos }
func (b *Body) Name() string                 { return b.kind.Name }
func (b *Body) Category() collision.Category { return b.kind.Category }
func (b *Body) Passive() bool                { return b.kind.Passive }

// State returns the lifecycle stage.
func (b *Body) State() State { return b.state }

// Env returns the session collaborators.
func (b *Body) Env() Env { return b.env }

// Mover returns the motion source, possibly nil.
func (b *Body) Mover() physics.Mover { return b.mover }

// Attach records the entity that embeds this body so renderers holding the
// registered *Body can reach per-kind data.
func (b *Body) Attach(owner any) { b.owner = owner }

// Owner returns the attached entity, or the body itself.
func (b *Body) Owner() any {
	if b.owner == nil {
		return b
	}
	return b.owner
}

// Blast returns the explosion in progress, or nil.
func (b *Body) Blast() *Explosion { return b.blast }

// Advance moves the body one tick. It returns true once the body is Removed
// and its owner may drop it.
func (b *Body) Advance() bool {
	switch b.state {
	case Removed:
		return true
	case Inactive:
		return false
	case Exploding:
		if b.blast != nil && !b.blast.Advance() {
			return false
		}
		b.clearBlast()
		if b.kind.Regenerable {
			b.state = Inactive
			return false
		}
		b.state = Removed
		b.env.Hide(b)
		return true
	}

	if b.mover == nil {
		return false
	}
	pos, arrived := b.mover.Step()
	b.pos = pos
	if arrived && b.kind.OnArrive == ArriveDetonate {
		b.Detonate()
	}
	return false
}

// Impact implements collision.Collidable. Only the first qualifying impact
// has any effect.
func (b *Body) Impact(other collision.Category) bool {
	if b.state != Alive || !b.active {
		return false
	}
	if b.kind.Ignores != nil && b.kind.Ignores(other) {
		return false
	}
	b.friendly = other.Friendly()
	switch {
	case other == collision.CategoryShield:
		b.explode(collision.CategoryInertExplosion)
	case b.friendly || b.kind.Category.Friendly():
		b.explode(collision.CategoryExplosion)
	default:
		b.explode(collision.CategoryHostileExplosion)
	}
	return b.kind.Evict
}

// Detonate destroys the body where it stands with a real explosion. No
// points are awarded. The blast is the player's only when the body is one
// of the player's own shots.
func (b *Body) Detonate() {
	if b.state != Alive || !b.active {
		return
	}
	b.friendly = false
	if b.kind.Category.Friendly() {
		b.explode(collision.CategoryExplosion)
	} else {
		b.explode(collision.CategoryHostileExplosion)
	}
	if b.kind.Evict {
		b.env.Hide(b)
	}
}

func (b *Body) explode(category collision.Category) {
	b.active = false
	b.env.Unregister(b)
	b.state = Exploding

	b.blast = NewExplosion(b.pos, b.kind.Blast, category)
	b.env.Register(b.blast)
	b.env.Show(b.blast)

	if b.blast.Inert() {
		b.env.Sounds().InertBoom()
	} else {
		b.env.Sounds().Boom()
	}
}

func (b *Body) clearBlast() {
	if b.blast == nil {
		return
	}
	b.env.Unregister(b.blast)
	b.env.Hide(b.blast)
	b.blast = nil
}

// Regenerate brings an Inactive body back. It is a no-op returning false in
// any other state.
func (b *Body) Regenerate() bool {
	if b.state != Inactive {
		return false
	}
	b.active = true
	b.state = Alive
	b.friendly = false
	b.env.Register(b)
	b.env.Show(b)
	b.env.Sounds().Regenerate()
	return true
}

// Points is the score for this body's destruction: the kind's points when
// the player destroyed it, zero otherwise.
func (b *Body) Points() int {
	if b.state == Alive || !b.friendly {
		return 0
	}
	return b.kind.Points
}

// RemoveFromScene implements collision.SceneRemover.
func (b *Body) RemoveFromScene(s collision.Surface) {
	if s != nil {
		s.Hide(b)
	}
}

// Deactivate takes an alive regenerable body straight to Inactive without an
// explosion, for example when a saved game records it as destroyed. Other
// kinds are removed.
func (b *Body) Deactivate() {
	if b.state != Alive {
		return
	}
	b.active = false
	b.env.Unregister(b)
	if b.kind.Regenerable {
		b.state = Inactive
		return
	}
	b.state = Removed
	b.env.Hide(b)
}

// Destroy ends the body immediately without an explosion or points. A
// closing session destroys everything it owns.
func (b *Body) Destroy() {
	b.clearBlast()
	if b.state == Alive {
		b.env.Unregister(b)
	}
	b.active = false
	b.state = Removed
	b.env.Hide(b)
}
