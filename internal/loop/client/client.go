package client

import (
	"bufio"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/orbitdefense/internal/draw"
	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/input"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/loop/server"
	"github.com/tomz197/orbitdefense/internal/savecode"
	"github.com/tomz197/orbitdefense/internal/sound"
)

// levelBannerSeconds is how long the level banner stays up.
const levelBannerSeconds = 2.0

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	level        int
	seed         int64
	sound        sound.Player
	termSizeFunc draw.TermSizeFunc
	log          *logrus.Entry
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Difficulty   int
	Level        int          // Starting level of a fresh game
	Seed         int64        // Zero seeds every game from the clock
	SaveCode     string       // Prefilled on the start screen
	Sound        sound.Player // Nil plays nothing
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc
	state.Difficulty = min(max(opts.Difficulty, 0), config.MaxDifficulty)
	state.Code = input.HexDigits([]byte(opts.SaveCode))

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, config.WorldHalfWidth, config.WorldHalfHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		level:        max(opts.Level, 1),
		seed:         opts.Seed,
		sound:        opts.Sound,
		termSizeFunc: termSizeFunc,
		log:          logger.Log.WithFields(logrus.Fields{"component": "client", "user": opts.Username}),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGameOver:
				c.state.GameState = GameStateOver
				c.state.FinalScore = event.Score
				c.state.FinalLevel = event.Level
				c.state.SaveCode = event.SaveCode
			case server.EventLevelUp:
				c.state.bannerLevel = event.Level
				c.state.levelBanner = levelBannerSeconds
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution,
// leaves room for the HUD rows and computes the centering offset.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight-config.HUDRows, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight-config.HUDRows)/2, 0)
	return
}

// updateStartState handles difficulty and save code entry.
func (c *Client) updateStartState() {
	in := c.state.Input
	if in.Plus {
		c.state.Difficulty = min(c.state.Difficulty+1, config.MaxDifficulty)
	}
	if in.Minus {
		c.state.Difficulty = max(c.state.Difficulty-1, 0)
	}
	if in.Backspace && len(c.state.Code) > 0 {
		c.state.Code = c.state.Code[:len(c.state.Code)-1]
		c.state.CodeError = ""
	}
	for _, b := range input.HexDigits(in.Typed) {
		if len(c.state.Code) < savecode.Length {
			c.state.Code = append(c.state.Code, b)
			c.state.CodeError = ""
		}
	}
	if in.Enter {
		c.startGame()
	}
}

// updatePlayingState forwards the frame's controls to the server.
func (c *Client) updatePlayingState() {
	if c.state.levelBanner > 0 {
		c.state.levelBanner -= c.state.delta.Seconds()
	}
	c.server.SendCommand(c.handle.ID, commandFor(c.state.Input))
}

// commandFor maps one frame of input to a game command.
func commandFor(in input.Input) game.Command {
	dx, dy := in.Axis()
	return game.Command{
		MoveX:        dx,
		MoveY:        dy,
		Fire:         in.Fire,
		ToggleShield: in.Shield,
	}
}

// updateOverState waits for a restart.
func (c *Client) updateOverState() {
	if c.state.Input.Enter {
		c.state.Code = c.state.Code[:0]
		c.startGame()
	}
}

// startGame starts a new session, restoring the typed save code if any.
func (c *Client) startGame() {
	opts := game.Options{Level: c.level, Difficulty: c.state.Difficulty, Seed: c.seed, Sound: c.sound}
	if len(c.state.Code) > 0 {
		data, err := savecode.Decode(string(c.state.Code))
		if err != nil {
			c.state.CodeError = "Invalid save code"
			c.log.WithError(err).Debug("rejected save code")
			return
		}
		opts.Load = &data
		c.state.Difficulty = data.Difficulty
	}

	c.inputStream.Reset()
	c.server.StartGame(c.handle.ID, opts)
	c.state.levelBanner = 0
	c.state.GameState = GameStatePlaying
	c.log.WithFields(logrus.Fields{
		"difficulty": opts.Difficulty,
		"restored":   opts.Load != nil,
	}).Info("game started")
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
