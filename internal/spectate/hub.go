// Package spectate streams an autopilot demo game to websocket watchers.
package spectate

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop/config"
)

// Hub owns the demo session and fans its snapshots out to watchers.
type Hub struct {
	mu       sync.Mutex
	watchers map[*Watcher]struct{}

	session   *game.Session
	pilot     *game.Autopilot
	seed      int64
	ticks     uint64
	overTicks int
	games     int

	log *logrus.Entry
}

// NewHub creates a hub. A zero seed starts each demo from a time-based seed.
func NewHub(seed int64) *Hub {
	h := &Hub{
		watchers: make(map[*Watcher]struct{}),
		pilot:    game.NewAutopilot(),
		seed:     seed,
		log:      logger.Log.WithField("component", "spectate"),
	}
	h.newGame()
	return h
}

func (h *Hub) newGame() {
	if h.session != nil {
		h.session.Close()
	}
	seed := h.seed
	if seed != 0 {
		seed += int64(h.games)
	}
	h.session = game.NewSession(game.Options{
		Level:      1,
		Difficulty: config.SpectateDifficulty,
		Seed:       seed,
		Log:        h.log,
	})
	h.overTicks = 0
	h.games++
	h.log.WithField("game", h.games).Debug("demo started")
}

// Run ticks the demo until ctx is cancelled, then disconnects every watcher.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Step()
		}
	}
}

// Step advances the demo one tick and broadcasts on every
// config.SpectateBroadcastEvery-th tick.
func (h *Hub) Step() {
	if h.session.GameOver() {
		h.overTicks++
		if h.overTicks >= config.SpectateRestartTicks {
			h.newGame()
		}
	} else {
		h.session.Tick(h.pilot.Next(h.session.Snapshot()))
	}

	h.ticks++
	if h.ticks%config.SpectateBroadcastEvery != 0 {
		return
	}
	frame, err := json.Marshal(h.session.Snapshot())
	if err != nil {
		h.log.WithError(err).Error("marshal snapshot")
		return
	}
	h.broadcast(frame)
}

// Watchers reports the number of connected watchers.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}

func (h *Hub) register(w *Watcher) {
	h.mu.Lock()
	h.watchers[w] = struct{}{}
	n := len(h.watchers)
	h.mu.Unlock()
	h.log.WithField("watchers", n).Info("watcher joined")
}

func (h *Hub) unregister(w *Watcher) {
	h.mu.Lock()
	_, ok := h.watchers[w]
	if ok {
		delete(h.watchers, w)
		close(w.send)
	}
	n := len(h.watchers)
	h.mu.Unlock()
	if ok {
		h.log.WithField("watchers", n).Info("watcher left")
	}
}

// broadcast queues frame for every watcher. A watcher whose queue is full
// is dropped.
func (h *Hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers {
		select {
		case w.send <- frame:
		default:
			delete(h.watchers, w)
			close(w.send)
			h.log.Warn("dropping slow watcher")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers {
		delete(h.watchers, w)
		close(w.send)
	}
	h.session.Close()
}
