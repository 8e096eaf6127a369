// Package collision holds the collidable contract and the per-session
// registry that sweeps all live collidables once per tick.
package collision

import "github.com/tomz197/orbitdefense/internal/physics"

// Collidable is implemented by everything that takes part in collision detection.
type Collidable interface {
	// Active is true until the entity is destroyed.
	Active() bool
	// Radius is the circular bounding radius.
	Radius() float64
	// Position is the current center in world coordinates.
	Position() physics.Vec2
	// Name is a display label. It carries no meaning for collision filtering.
	Name() string
	// Category drives the filter rules.
	Category() Category
	// Passive entities never collide with other passive entities.
	Passive() bool
	// Impact handles a collision with an entity of the other category. It
	// returns true when the entity should also be evicted from the surface.
	Impact(other Category) bool
}

// Surface is the rendering collaborator that displays collidables.
type Surface interface {
	Show(c Collidable)
	Hide(c Collidable)
}

// SceneRemover is optionally implemented by collidables that know how to
// evict themselves from a surface.
type SceneRemover interface {
	RemoveFromScene(s Surface)
}

// Registry is the authoritative list of live collidables for one session.
// It is not safe for concurrent use; a session's tick goroutine owns it.
type Registry struct {
	items    []Collidable
	pending  []Collidable // Registered during a sweep
	sweeping bool
	holes    bool // Unregister left nil slots during a sweep
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends c to the live list. There is no duplicate check; callers
// must not register the same collidable twice.
func (r *Registry) Register(c Collidable) {
	if c == nil {
		return
	}
	if r.sweeping {
		r.pending = append(r.pending, c)
		return
	}
	r.items = append(r.items, c)
}

// Unregister removes c by identity. It is a no-op if c is not registered.
func (r *Registry) Unregister(c Collidable) {
	for i, p := range r.pending {
		if p == c {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
	for i, item := range r.items {
		if item != c {
			continue
		}
		if r.sweeping {
			r.items[i] = nil
			r.holes = true
			return
		}
		copy(r.items[i:], r.items[i+1:])
		r.items[len(r.items)-1] = nil
		r.items = r.items[:len(r.items)-1]
		return
	}
}

// Contains reports whether c is currently registered.
func (r *Registry) Contains(c Collidable) bool {
	for _, item := range r.items {
		if item == c {
			return true
		}
	}
	for _, p := range r.pending {
		if p == c {
			return true
		}
	}
	return false
}

// Len returns the number of registered collidables.
func (r *Registry) Len() int {
	n := len(r.pending)
	for _, item := range r.items {
		if item != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every registered collidable in registration order.
func (r *Registry) Each(fn func(Collidable)) {
	for _, item := range r.items {
		if item != nil {
			fn(item)
		}
	}
	for _, p := range r.pending {
		fn(p)
	}
}

// Reset drops every collidable. Called when a session ends.
func (r *Registry) Reset() {
	clear(r.items)
	r.items = r.items[:0]
	r.pending = nil
	r.holes = false
}

// Eligible applies the pair filter rules without testing distance.
func Eligible(a, b Collidable) bool {
	if !a.Active() || !b.Active() {
		return false
	}
	ca, cb := a.Category(), b.Category()
	if ca == CategoryEnemyProjectile && cb == CategoryEnemyProjectile {
		return false
	}
	if a.Passive() && b.Passive() {
		return false
	}
	if ca == CategoryInertExplosion || cb == CategoryInertExplosion {
		return false
	}
	if ca.RealBlast() && cb.RealBlast() {
		return false
	}
	if ca.Bandit() && cb.Bandit() {
		return false
	}
	if (ca.Bandit() && cb == CategoryEnemyProjectile) || (cb.Bandit() && ca == CategoryEnemyProjectile) {
		return false
	}
	return true
}

// Tick checks every unordered pair once and dispatches impacts. It returns
// the number of colliding pairs. Impact handlers are expected to unregister
// their own entity; the registry never does it for them.
func (r *Registry) Tick(surface Surface) int {
	r.sweeping = true
	hits := 0

	n := len(r.items)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a := r.items[i]
			if a == nil {
				break
			}
			b := r.items[j]
			if b == nil || !Eligible(a, b) {
				continue
			}
			if !physics.CirclesOverlap(a.Position(), a.Radius(), b.Position(), b.Radius()) {
				continue
			}
			hits++
			ca, cb := a.Category(), b.Category()
			evictA := a.Impact(cb)
			evictB := b.Impact(ca)
			if evictA {
				evict(a, surface)
			}
			if evictB {
				evict(b, surface)
			}
		}
	}

	r.sweeping = false
	r.compact()
	return hits
}

func evict(c Collidable, surface Surface) {
	if rm, ok := c.(SceneRemover); ok {
		rm.RemoveFromScene(surface)
	}
}

// compact removes nil slots left by Unregister and appends pending entries.
func (r *Registry) compact() {
	if r.holes {
		kept := r.items[:0]
		for _, item := range r.items {
			if item != nil {
				kept = append(kept, item)
			}
		}
		clear(r.items[len(kept):])
		r.items = kept
		r.holes = false
	}
	if len(r.pending) > 0 {
		r.items = append(r.items, r.pending...)
		r.pending = r.pending[:0]
	}
}
