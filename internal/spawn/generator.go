// Package spawn manages pools of spawned entities: it advances them, credits
// the score when they are destroyed and refills them as levels advance.
package spawn

import "github.com/tomz197/orbitdefense/internal/lifecycle"

// Member is an entity owned by a generator.
type Member interface {
	// Advance runs one tick and returns true once the member is finished.
	Advance() bool
	State() lifecycle.State
	// Points earned for the member's destruction, before the multiplier.
	Points() int
}

// Regenerator is implemented by members that can come back from Inactive.
type Regenerator interface {
	Regenerate() bool
}

// Scoreboard receives points for destroyed members.
type Scoreboard interface {
	AddPoints(n int)
}

// Recipe describes how a generator sizes and fills its pool.
type Recipe[T Member] struct {
	Base          int // Members at level 1, difficulty 0
	PerDifficulty int // Extra members per difficulty step
	// Growth returns how many members each level adds. Nil means
	// difficulty+1.
	Growth func(difficulty int) int
	// Max caps the pool size whatever the level and difficulty. Zero means
	// no cap.
	Max int
	// Spawn creates member i of the current level. It is expected to
	// register the member with the session.
	Spawn func(level, difficulty, i int) T
}

func (r Recipe[T]) growth(difficulty int) int {
	if r.Growth == nil {
		return difficulty + 1
	}
	return r.Growth(difficulty)
}

func (r Recipe[T]) capped(n int) int {
	if r.Max > 0 && n > r.Max {
		return r.Max
	}
	return n
}

// Generator owns a pool of members of one kind.
type Generator[T Member] struct {
	recipe     Recipe[T]
	board      Scoreboard
	level      int
	difficulty int
	maxCount   int
	spawned    int // Members created since the last level change
	members    Pool[T]
}

// NewGenerator sizes the pool for level and difficulty and spawns it.
func NewGenerator[T Member](recipe Recipe[T], level, difficulty int, board Scoreboard) *Generator[T] {
	if level < 1 {
		level = 1
	}
	if difficulty < 0 {
		difficulty = 0
	}
	g := &Generator[T]{
		recipe:     recipe,
		board:      board,
		level:      level,
		difficulty: difficulty,
	}
	g.maxCount = recipe.capped(recipe.Base + recipe.PerDifficulty*difficulty + (level-1)*recipe.growth(difficulty))
	g.fill()
	return g
}

// fill spawns members until maxCount have been created for this level.
func (g *Generator[T]) fill() {
	for g.spawned < g.maxCount {
		if g.recipe.Spawn != nil {
			g.members.Add(g.recipe.Spawn(g.level, g.difficulty, g.spawned))
		}
		g.spawned++
	}
}

// Multiplier scales member points by difficulty.
func (g *Generator[T]) Multiplier() int {
	return g.difficulty + 1
}

// Tick advances every member, scores the finished ones while the game is
// active and drops them from the pool keeping the survivors in order. It
// returns true when the pool is empty.
func (g *Generator[T]) Tick(gameActive bool) bool {
	return g.members.Tick(func(m T) {
		if gameActive {
			g.award(m.Points())
		}
	})
}

func (g *Generator[T]) award(points int) {
	if g.board != nil && points > 0 {
		g.board.AddPoints(points * g.Multiplier())
	}
}

// AdvanceLevel grows the pool for every level step up to newLevel, spawns
// the new members and regenerates inactive ones. It does nothing once the
// game is over.
func (g *Generator[T]) AdvanceLevel(newLevel int, gameActive bool) {
	if !gameActive {
		return
	}
	for g.level < newLevel {
		g.level++
		g.maxCount = g.recipe.capped(g.maxCount + g.recipe.growth(g.difficulty))
	}
	g.spawned = g.members.Len()
	g.fill()

	g.members.Each(func(m T) {
		if r, ok := any(m).(Regenerator); ok && m.State() == lifecycle.Inactive {
			r.Regenerate()
		}
	})
}

// MaxCount returns the pool's target size for the current level.
func (g *Generator[T]) MaxCount() int { return g.maxCount }

// Len returns the number of live members.
func (g *Generator[T]) Len() int { return g.members.Len() }

// Level returns the generator's current level.
func (g *Generator[T]) Level() int { return g.level }

// Each calls fn for every member in spawn order.
func (g *Generator[T]) Each(fn func(T)) {
	g.members.Each(fn)
}
