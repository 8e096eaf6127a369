package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	StartGame(clientID int, opts game.Options)
	SendCommand(clientID int, cmd game.Command)
	GetSnapshot(clientID int) *game.Snapshot
	TopScores() []TopScoreEntry
}

// Server runs every connected client's session on one tick goroutine.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	requests     chan clientRequest // Register, unregister and start, in arrival order
	mu           sync.RWMutex

	leaderboard *Leaderboard
	topScores   atomic.Pointer[[]TopScoreEntry]
	log         *logrus.Entry
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (game over, etc.)

	session  *game.Session
	pending  game.Command // Commands merged since the last tick
	level    int
	reported bool // Game over already announced
	snapshot atomic.Pointer[game.Snapshot]
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Command  game.Command
}

type requestKind int

const (
	requestRegister requestKind = iota
	requestUnregister
	requestStart
)

// clientRequest changes a client's membership or session. Requests share one
// channel so a client's register, start and unregister apply in the order
// they were made.
type clientRequest struct {
	kind     requestKind
	handle   *ClientHandle // requestRegister
	clientID int
	opts     game.Options // requestStart
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Score    int
	Level    int
	SaveCode string // For game over events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGameOver ClientEventType = iota
	EventLevelUp
	EventServerShutdown
)

// NewServer creates a new game server.
func NewServer() *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		requests:     make(chan clientRequest, 64),
		leaderboard:  NewLeaderboard(config.TopScoreCount),
		log:          logger.Log.WithField("component", "server"),
	}
	empty := []TopScoreEntry{}
	s.topScores.Store(&empty)
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	defer s.disconnectAll()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.Step()

		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Step runs one server tick: pending registrations and commands are applied,
// every running session advances and new snapshots are published.
func (s *Server) Step() {
	s.processRegistrations()
	s.collectInputs()
	s.updateSessions()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.requests <- clientRequest{kind: requestRegister, handle: handle, clientID: id}
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.requests <- clientRequest{kind: requestUnregister, clientID: clientID}
}

// StartGame replaces the client's session with a new one.
func (s *Server) StartGame(clientID int, opts game.Options) {
	s.requests <- clientRequest{kind: requestStart, clientID: clientID, opts: opts}
}

// SendCommand queues a command from a client for the next tick.
func (s *Server) SendCommand(clientID int, cmd game.Command) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Command: cmd}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the client's latest snapshot, or nil before its first
// game has ticked.
func (s *Server) GetSnapshot(clientID int) *game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if handle, ok := s.clients[clientID]; ok {
		return handle.snapshot.Load()
	}
	return nil
}

// TopScores returns the best finished games, highest first.
func (s *Server) TopScores() []TopScoreEntry {
	return *s.topScores.Load()
}

// processRegistrations applies pending registrations, unregistrations and
// game starts in the order they were requested.
func (s *Server) processRegistrations() {
	for {
		select {
		case req := <-s.requests:
			s.apply(req)
		default:
			return
		}
	}
}

func (s *Server) apply(req clientRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.kind {
	case requestRegister:
		s.clients[req.handle.ID] = req.handle
		s.log.WithFields(logrus.Fields{"client": req.handle.ID, "user": req.handle.Username}).Info("client registered")
	case requestUnregister:
		handle, ok := s.clients[req.clientID]
		if !ok {
			return
		}
		if handle.session != nil {
			handle.session.Close()
		}
		close(handle.EventsCh)
		delete(s.clients, req.clientID)
		s.log.WithField("client", req.clientID).Info("client unregistered")
	case requestStart:
		if handle, ok := s.clients[req.clientID]; ok {
			s.startLocked(handle, req.opts)
		}
	}
}

func (s *Server) startLocked(handle *ClientHandle, opts game.Options) {
	if handle.session != nil {
		handle.session.Close()
	}
	if opts.Log == nil {
		opts.Log = s.log.WithFields(logrus.Fields{"client": handle.ID, "user": handle.Username})
	}
	handle.session = game.NewSession(opts)
	handle.pending = game.Command{}
	handle.level = handle.session.Level()
	handle.reported = false
	handle.snapshot.Store(handle.session.Snapshot())
}

// collectInputs merges pending commands into each client's next command.
// Held movement takes the latest value; one-shot actions accumulate so a
// press between ticks is never lost.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.pending = mergeCommands(handle.pending, ci.Command)
			}
		default:
			return
		}
	}
}

func mergeCommands(prev, next game.Command) game.Command {
	merged := next
	if merged.Aim == nil {
		merged.Aim = prev.Aim
	}
	merged.Fire = prev.Fire || next.Fire
	merged.ToggleShield = prev.ToggleShield != next.ToggleShield
	return merged
}

// updateSessions ticks every running session and publishes its snapshot.
func (s *Server) updateSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, handle := range s.clients {
		if handle.session == nil {
			continue
		}
		handle.session.Tick(handle.pending)
		handle.pending = game.Command{}

		if lvl := handle.session.Level(); lvl != handle.level {
			handle.level = lvl
			s.notify(handle, ClientEvent{Type: EventLevelUp, Level: lvl, Score: handle.session.Score()})
		}

		snap := handle.session.Snapshot()
		handle.snapshot.Store(snap)

		if snap.GameOver && !handle.reported {
			handle.reported = true
			s.notify(handle, ClientEvent{
				Type:     EventGameOver,
				Score:    snap.HUD.Score,
				Level:    snap.HUD.Level,
				SaveCode: snap.SaveCode,
			})
			s.recordScore(handle, snap)
		}
	}
}

func (s *Server) notify(handle *ClientHandle, ev ClientEvent) {
	select {
	case handle.EventsCh <- ev:
	default:
	}
}

func (s *Server) recordScore(handle *ClientHandle, snap *game.Snapshot) {
	if !s.leaderboard.Record(TopScoreEntry{
		Username: handle.Username,
		Score:    snap.HUD.Score,
		Level:    snap.HUD.Level,
		clientID: handle.ID,
	}) {
		return
	}
	top := s.leaderboard.Entries()
	s.topScores.Store(&top)
	s.log.WithFields(logrus.Fields{
		"user":  handle.Username,
		"score": snap.HUD.Score,
	}).Info("new top score")
}

// disconnectAll ends every session and closes the clients' event channels
// so their loops exit.
func (s *Server) disconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, handle := range s.clients {
		if handle.session != nil {
			handle.session.Close()
		}
		close(handle.EventsCh)
		delete(s.clients, id)
	}
}
