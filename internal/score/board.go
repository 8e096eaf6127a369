// Package score keeps a session's score and the milestones that earn
// regenerations.
package score

// Board accumulates points. It is owned by a single session.
type Board struct {
	score      int
	every      int
	milestones int // Milestones already handed out
}

// NewBoard creates a board that reports a milestone every regenEvery
// points. A non-positive regenEvery disables milestones.
func NewBoard(regenEvery int) *Board {
	return &Board{every: regenEvery}
}

// AddPoints adds n to the score. Non-positive amounts are ignored.
func (b *Board) AddPoints(n int) {
	if n <= 0 {
		return
	}
	b.score += n
}

// Score returns the current score.
func (b *Board) Score() int { return b.score }

// SetScore replaces the score, e.g. when a saved game is loaded. Milestones
// already below the new score are considered spent.
func (b *Board) SetScore(n int) {
	b.score = max(n, 0)
	b.milestones = b.reached()
}

func (b *Board) reached() int {
	if b.every <= 0 {
		return 0
	}
	return b.score / b.every
}

// TakeMilestones returns how many milestones were crossed since the last
// call.
func (b *Board) TakeMilestones() int {
	r := b.reached()
	n := r - b.milestones
	b.milestones = r
	return n
}
