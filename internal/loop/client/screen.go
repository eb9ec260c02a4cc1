package client

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/loop/server"
	"github.com/tomz197/spaceship/internal/loop/world"
	"github.com/tomz197/spaceship/internal/object"
)

// ASCII art titles (figlet "small" font)
var (
	titleArt = []string{
		` ___ ___  _   ___ ___ ___ _  _ ___ ___ `,
		`/ __| _ \/_\ / __| __/ __| || |_ _| _ \`,
		`\__ \  _/ _ \ (__| _|\__ \ __ || ||  _/`,
		`|___/_|/_/ \_\___|___|___/_||_|___|_|  `,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	gs := c.world.State()
	if gs != c.state.prevGameState || c.state.isInactive != c.state.wasInactive ||
		c.state.Shutdown != c.state.prevShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = gs
		c.state.wasInactive = c.state.isInactive
		c.state.prevShutdown = c.state.Shutdown
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
	}
	if err := c.world.Draw(ctx); err != nil {
		return err
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Level banners are text overlays and must come after the canvas
	if err := c.world.DrawOverlays(ctx); err != nil {
		return err
	}

	c.drawUI(c.world.Snapshot(), c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the HUD and the screen for the current state.
func (c *Client) drawUI(ws world.Snapshot, hub *server.Snapshot) {
	width := c.canvas.TerminalWidth()
	centerY := c.canvas.TerminalHeight() / 2

	c.drawHUD(width, ws, hub)

	if c.state.Shutdown {
		c.drawShutdownScreen(width, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(width, centerY)
		return
	}

	switch ws.State {
	case world.StateIdle:
		if c.state.HasLastGame {
			c.drawGameOverScreen(width, centerY, hub)
		} else {
			c.drawStartScreen(width, centerY, hub)
		}
	case world.StatePaused:
		c.drawPausedScreen(width, centerY)
	}
}

// text writes s at a canvas position and marks the cells for repaint on the
// next frame, so text never lingers after the screen changes.
func (c *Client) text(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s centred on the canvas. Lines wider than the canvas are skipped.
func (c *Client) centered(width, row int, s string) {
	n := utf8.RuneCountInString(s)
	if n > width {
		return
	}
	c.text((width-n)/2+1, row, s)
}

// drawArt writes a block of ASCII art centred, or the fallback line when
// the canvas is too narrow. Returns the number of rows used.
func (c *Client) drawArt(width, row int, art []string, fallback string) int {
	if utf8.RuneCountInString(art[0]) > width {
		c.centered(width, row, fallback)
		return 1
	}
	for i, line := range art {
		c.centered(width, row+i, line)
	}
	return len(art)
}

// drawHUD draws score, lives and level on the row above the playfield.
// Fields are fixed width so shrinking values don't leave residual characters.
func (c *Client) drawHUD(width int, ws world.Snapshot, hub *server.Snapshot) {
	cw := c.chunkWriter
	cw.WriteAt(1, 0, fmt.Sprintf("%sSCORE %06d%s", draw.TextBold, ws.Score, draw.ColorReset))

	right := fmt.Sprintf("LV %-2d LIVES %d", ws.Level, ws.Lives)
	if ws.State == world.StateIdle {
		right = fmt.Sprintf("ONLINE %-3d   ", hub.Players)
	}
	col := width - utf8.RuneCountInString(right) + 1
	if col > 14 {
		cw.WriteAt(col, 0, right)
	}
}

// drawStartScreen draws the title screen with the leaderboard.
func (c *Client) drawStartScreen(width, centerY int, hub *server.Snapshot) {
	row := centerY - 10
	row += c.drawArt(width, row, titleArt, "SPACESHIP") + 1

	c.centered(width, row, "~ Arcade shooter over SSH ~")
	row += 2

	controls := []string{
		"WASD / arrows  . Move",
		"SPACE  . . . .  Shoot",
		"P / ESC  . . .  Pause",
		"Q  . . . . . . . Quit",
	}
	for _, line := range controls {
		c.centered(width, row, line)
		row++
	}
	row++

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(width, row, ">> Press SPACE to Start <<")
	}
	row += 2

	c.drawLeaderboard(width, row, hub)
}

// drawLeaderboard lists the best games, or nothing when there are none yet.
func (c *Client) drawLeaderboard(width, row int, hub *server.Snapshot) {
	if len(hub.TopScores) == 0 {
		return
	}
	c.centered(width, row, "HIGH SCORES")
	row++
	for _, e := range hub.TopScores {
		name := e.Name
		if utf8.RuneCountInString(name) > config.MaxUsernameLength {
			name = string([]rune(name)[:config.MaxUsernameLength])
		}
		line := fmt.Sprintf("%2d. %-*s %06d  L%d", e.Rank, config.MaxUsernameLength, name, e.Score, e.Level)
		c.centered(width, row, line)
		row++
	}
}

// drawGameOverScreen shows the result of the last game.
func (c *Client) drawGameOverScreen(width, centerY int, hub *server.Snapshot) {
	row := centerY - 8
	row += c.drawArt(width, row, gameOverArt, "GAME OVER") + 1

	last := c.state.LastGame
	c.centered(width, row, fmt.Sprintf("Final score %06d", last.Score))
	row++
	c.centered(width, row, fmt.Sprintf("Reached level %d", last.Level))
	row += 2

	switch {
	case c.state.Rank > 0:
		c.centered(width, row, fmt.Sprintf("New high score! Rank #%d", c.state.Rank))
		row += 2
	case c.state.PersonalBest:
		c.centered(width, row, "New personal best!")
		row += 2
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(width, row, ">> Press SPACE to Restart <<")
	}
	row += 2

	c.drawLeaderboard(width, row, hub)
}

// drawPausedScreen draws the pause overlay.
func (c *Client) drawPausedScreen(width, centerY int) {
	c.centered(width, centerY-1, "- PAUSED -")
	c.centered(width, centerY+1, "Press P to resume")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(width, centerY int) {
	c.centered(width, centerY-2, "INACTIVITY WARNING")
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.centered(width, centerY, fmt.Sprintf("Disconnecting in %d seconds", remaining))
	c.centered(width, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(width, centerY int) {
	c.centered(width, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(width, centerY-1, "The server is restarting for maintenance.")
	c.centered(width, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(width, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(width, centerY+4, "Press Q to disconnect now")
}
