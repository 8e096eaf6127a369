package client

import (
	"time"

	"github.com/tomz197/orbitdefense/internal/draw"
	"github.com/tomz197/orbitdefense/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen, difficulty and save code entry
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Every base lost, show score and save code
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state (input, screen, last result).
type ClientState struct {
	Input      input.Input
	GameState  GameState
	Difficulty int
	Code       []byte // Save code typed on the start screen
	CodeError  string

	// Result of the last finished game.
	FinalScore int
	FinalLevel int
	SaveCode   string

	levelBanner   float64 // Seconds left showing the level banner
	bannerLevel   int
	termSizeFunc  draw.TermSizeFunc
	Running       bool
	delta         time.Duration
	shutdownTimer float64
	isInactive    bool
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Running:       true,
		prevGameState: GameStateStart,
	}
}
