package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/draw"
	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/loop/config"
)

// reticleArm is the half-length of the crosshair in world units.
const reticleArm = 0.7

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	var snap *game.Snapshot
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		snap = c.server.GetSnapshot(c.handle.ID)
	}
	if snap != nil {
		c.drawWorld(snap)
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawWorld rasterizes every sprite plus the reticle.
func (c *Client) drawWorld(snap *game.Snapshot) {
	for _, sp := range snap.Sprites {
		drawSprite(c.canvas, sp)
	}
	if !snap.GameOver {
		x, y := snap.ReticleX, snap.ReticleY
		c.canvas.Line(x-reticleArm, y, x+reticleArm, y)
		c.canvas.Line(x, y-reticleArm, x, y+reticleArm)
		if snap.HUD.Forbidden {
			c.canvas.Circle(x, y, reticleArm)
		}
	}
}

// drawSprite draws one entity according to its kind.
func drawSprite(cv *draw.Canvas, sp game.Sprite) {
	switch sp.Kind {
	case collision.CategoryPlanet.String():
		cv.Disc(sp.X, sp.Y, sp.Radius, 1)
	case collision.CategoryShield.String():
		cv.Circle(sp.X, sp.Y, sp.Radius)
	case collision.CategoryBase.String():
		if !sp.Active {
			cv.Disc(sp.X, sp.Y, sp.Radius, 0.25)
			return
		}
		cv.Polygon(regularPolygon(sp.X, sp.Y, sp.Radius, 3, math.Atan2(sp.Y, sp.X)), true)
	case collision.CategorySatellite.String():
		if !sp.Active {
			cv.Disc(sp.X, sp.Y, sp.Radius, 0.25)
			return
		}
		cv.Polygon(regularPolygon(sp.X, sp.Y, sp.Radius, 4, math.Pi/4), false)
		cv.Plot(sp.X, sp.Y)
	case collision.CategoryAsteroid.String():
		if len(sp.Outline) >= 3 {
			cv.Polygon(outlinePolygon(sp.X, sp.Y, sp.Angle, sp.Outline), false)
			return
		}
		cv.Circle(sp.X, sp.Y, sp.Radius)
	case collision.CategorySaucer.String():
		cv.Polygon(ellipse(sp.X, sp.Y, sp.Radius, sp.Radius*0.45, 10), true)
	case collision.CategoryDrone.String():
		cv.Polygon(regularPolygon(sp.X, sp.Y, sp.Radius, 4, 0), true)
	case collision.CategoryExplosion.String(), collision.CategoryHostileExplosion.String():
		cv.Disc(sp.X, sp.Y, sp.Radius, sp.Opacity)
	case collision.CategoryInertExplosion.String():
		cv.Disc(sp.X, sp.Y, sp.Radius, sp.Opacity*0.5)
	default:
		cv.Plot(sp.X, sp.Y)
	}
}

// regularPolygon returns n vertices around (x, y) as alternating coordinates.
func regularPolygon(x, y, r float64, n int, rotation float64) []float64 {
	coords := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		a := rotation + 2*math.Pi*float64(i)/float64(n)
		coords = append(coords, x+r*math.Cos(a), y+r*math.Sin(a))
	}
	return coords
}

func ellipse(x, y, rx, ry float64, n int) []float64 {
	coords := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		coords = append(coords, x+rx*math.Cos(a), y+ry*math.Sin(a))
	}
	return coords
}

// outlinePolygon expands an irregular outline: vertex i lies at distance
// radii[i] along angle + 2πi/n.
func outlinePolygon(x, y, angle float64, radii []float64) []float64 {
	n := len(radii)
	coords := make([]float64, 0, 2*n)
	for i, r := range radii {
		a := angle + 2*math.Pi*float64(i)/float64(n)
		coords = append(coords, x+r*math.Cos(a), y+r*math.Sin(a))
	}
	return coords
}

// drawUI draws the overlay for the current game state.
func (c *Client) drawUI(snap *game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		if snap != nil {
			c.drawHUD(termWidth, termHeight, snap)
		}
		if c.state.levelBanner > 0 {
			c.writeCentered(centerX, centerY-4, fmt.Sprintf("LEVEL %d", c.state.bannerLevel))
		}
	case GameStateOver:
		if snap != nil {
			c.drawHUD(termWidth, termHeight, snap)
		}
		c.drawOverScreen(centerX, centerY)
	}
}

// writeCentered writes text centered on centerX over the play field and
// marks the covered cells for repaint.
func (c *Client) writeCentered(centerX, row int, text string) {
	width := len([]rune(text))
	col := max(centerX-width/2, 1)
	c.chunkWriter.WriteAt(col, row, text)
	c.canvas.MarkTextDirty(col, row, width)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	`  ___  ___ ___ ___ _____   ___  ___ ___ ___ _  _  ___ ___ `,
	` / _ \| _ \ _ )_ _|_   _| |   \| __| __| __| \| |/ __| __|`,
	`| (_) |   / _ \| |  | |   | |) | _|| _|| _|| .' |\__ \ _| `,
	` \___/|_|_\___/___| |_|   |___/|___|_| |___|_|\_||___/___|`,
}

// drawStartScreen draws the title screen with difficulty and save code entry.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	titleStartY := centerY - 9
	for i, line := range titleArt {
		c.chunkWriter.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	y := titleStartY + len(titleArt) + 1
	c.writeCentered(centerX, y, "~ Defend the planet ~")

	controls := []string{
		"Arrows / WASD . . . Move reticle",
		"SPACE / F . . . . . . . . . Fire",
		"E / X / TAB . . . . Toggle shield",
		"Q . . . . . . . . . . . . . Quit",
	}
	for i, line := range controls {
		c.writeCentered(centerX, y+2+i, line)
	}

	y += len(controls) + 3
	c.writeCentered(centerX, y, fmt.Sprintf("Difficulty: < %2d >   (+/-)", c.state.Difficulty))

	code := string(c.state.Code) + strings.Repeat("_", max(16-len(c.state.Code), 0))
	c.writeCentered(centerX, y+2, "Save code: "+code)
	if c.state.CodeError != "" {
		c.writeCentered(centerX, y+3, draw.ColorRed+c.state.CodeError+draw.ColorReset)
	} else {
		c.writeCentered(centerX, y+3, strings.Repeat(" ", len("Invalid save code")))
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, y+5, ">>  Press ENTER to Start  <<")
	} else {
		c.writeCentered(centerX, y+5, strings.Repeat(" ", len(">>  Press ENTER to Start  <<")))
	}

	if top := c.server.TopScores(); len(top) > 0 {
		c.writeCentered(centerX, y+7, "Top defenders")
		for i, e := range top {
			c.writeCentered(centerX, y+8+i, fmt.Sprintf("%d. %-12s %8d  L%d", i+1, e.Username, e.Score, e.Level))
		}
	}
}

// drawHUD draws the status rows below the play field. Fields use fixed
// widths so shrinking values don't leave residual characters.
func (c *Client) drawHUD(termWidth, termHeight int, snap *game.Snapshot) {
	h := snap.HUD
	cw := c.chunkWriter
	row := termHeight + 1
	if c.canvas.OffsetRow() >= 1 {
		row++ // Below the border
	}

	left := fmt.Sprintf("Score: %-8d Level: %-3d Diff: %-2d", h.Score, h.Level, h.Difficulty)
	cw.WriteText(draw.Text{X: 1, Y: row, Value: left})

	shield := "down"
	if h.ShieldRaised {
		shield = "UP  "
	}
	right := fmt.Sprintf("Shield %s %3.0f%%", shield, h.ShieldEnergy)
	cw.WriteText(draw.Text{X: termWidth - len(right), Y: row, Value: right})

	var b strings.Builder
	b.WriteString("Bases ")
	for _, alive := range h.Bases {
		b.WriteString(installationMark(alive))
	}
	b.WriteString("  Sats ")
	for i, alive := range h.Satellites {
		if !alive {
			b.WriteString(installationMark(false))
			continue
		}
		b.WriteRune(draw.ShadeLevel(h.SatelliteEnergy[i] / config.SatelliteEnergyMax))
	}
	fmt.Fprintf(&b, "  Rocks %-3d Saucers %-2d Drones %-2d", h.Asteroids, h.Saucers, h.Drones)
	cw.WriteText(draw.Text{X: 1, Y: row + 1, Value: b.String()})
}

func installationMark(alive bool) string {
	if alive {
		return string(draw.BlockFull)
	}
	return draw.ColorRed + "x" + draw.ColorReset
}

// drawOverScreen shows the final score and the code to resume from.
func (c *Client) drawOverScreen(centerX, centerY int) {
	over := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	startY := centerY - 6
	for i, line := range over {
		c.writeCentered(centerX, startY+i, line)
	}

	y := startY + len(over) + 1
	c.writeCentered(centerX, y, fmt.Sprintf("Score: %d   Level: %d", c.state.FinalScore, c.state.FinalLevel))
	c.writeCentered(centerX, y+2, "Save code: "+c.state.SaveCode)

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, y+4, ">>  Press ENTER to Play Again  <<")
	} else {
		c.writeCentered(centerX, y+4, strings.Repeat(" ", len(">>  Press ENTER to Play Again  <<")))
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")
	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
