package game

import (
	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
)

// Scene is the session's display list. It implements collision.Surface and
// keeps entities in the order they were first shown so later entities draw
// on top.
type Scene struct {
	items []collision.Collidable
	index map[collision.Collidable]int
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{index: make(map[collision.Collidable]int)}
}

// Show adds c. Showing an entity twice keeps its original position.
func (s *Scene) Show(c collision.Collidable) {
	if c == nil {
		return
	}
	if _, ok := s.index[c]; ok {
		return
	}
	s.index[c] = len(s.items)
	s.items = append(s.items, c)
}

// Hide removes c. Hiding an absent entity is a no-op.
func (s *Scene) Hide(c collision.Collidable) {
	i, ok := s.index[c]
	if !ok {
		return
	}
	delete(s.index, c)
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
}

// Len returns the number of shown entities.
func (s *Scene) Len() int { return len(s.items) }

// Contains reports whether c is shown.
func (s *Scene) Contains(c collision.Collidable) bool {
	_, ok := s.index[c]
	return ok
}

// Clear empties the scene.
func (s *Scene) Clear() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.index)
}

// outlined is implemented by entities with an irregular render shape.
type outlined interface {
	Outline() (angle float64, vertices []float64)
}

// Sprites converts the scene into render data, in display order.
func (s *Scene) Sprites() []Sprite {
	sprites := make([]Sprite, 0, len(s.items))
	for _, c := range s.items {
		sprites = append(sprites, spriteOf(c))
	}
	return sprites
}

func spriteOf(c collision.Collidable) Sprite {
	p := c.Position()
	sp := Sprite{
		Kind:    c.Category().String(),
		Name:    c.Name(),
		X:       p.X,
		Y:       p.Y,
		Radius:  c.Radius(),
		Active:  c.Active(),
		Opacity: 1,
	}
	switch v := c.(type) {
	case *lifecycle.Explosion:
		sp.Opacity = v.Opacity()
	case *lifecycle.Body:
		if o, ok := v.Owner().(outlined); ok {
			sp.Angle, sp.Outline = o.Outline()
		}
	}
	return sp
}
