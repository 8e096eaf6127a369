package server

import "sort"

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Level    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Leaderboard keeps the best finished games across all clients.
type Leaderboard struct {
	size    int
	entries []TopScoreEntry
}

// NewLeaderboard creates a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	return &Leaderboard{size: size}
}

// Record adds e if it places and reports whether the board changed. Games
// with no score never place.
func (l *Leaderboard) Record(e TopScoreEntry) bool {
	if e.Score <= 0 || l.size <= 0 {
		return false
	}
	if len(l.entries) == l.size && !ranksAbove(e, l.entries[len(l.entries)-1]) {
		return false
	}

	l.entries = append(l.entries, e)
	sort.SliceStable(l.entries, func(i, j int) bool {
		return ranksAbove(l.entries[i], l.entries[j])
	})
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
	return true
}

// Entries returns a copy of the board, best first.
func (l *Leaderboard) Entries() []TopScoreEntry {
	out := make([]TopScoreEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// ranksAbove orders by score, then level, then earliest client.
func ranksAbove(a, b TopScoreEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.clientID < b.clientID
}
