// Package client runs one play session: it reads the terminal, drives a
// private world simulation and renders it.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/input"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/loop/server"
	"github.com/tomz197/spaceship/internal/loop/world"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	world        *world.World
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Game         config.GameConfig
	Levels       []config.Level
	Logger       *log.Logger
	Sound        audio.Sink
}

// NewClient creates a new client connected to the given hub.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("user", opts.Username)

	handle := gs.RegisterClient(opts.Username)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, loopconfig.FieldWidth, loopconfig.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server: gs,
		handle: handle,
		state:  NewClientState(),
		world: world.New(opts.Game, opts.Levels, world.Options{
			Logger: logger,
			Sound:  opts.Sound,
		}),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		log:          logger,
	}
}

// Run starts the client loop. Blocks until the client quits, the input
// ends, the context is cancelled or the server shutdown countdown expires.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = min(frameStart.Sub(lastTime), loopconfig.MaxFrameDelta)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.Shutdown {
			c.updateShutdownState()
		} else {
			c.updateGame()
		}

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > loopconfig.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventScoreRecorded:
				c.state.Rank = event.Rank
				c.state.PersonalBest = event.PersonalBest
			case server.EventServerShutdown:
				c.state.Shutdown = true
				c.state.shutdownTimer = loopconfig.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the playfield into the terminal below the HUD row.
// The playfield is twice as tall as it is wide and each cell holds two
// vertical pixels, so the render area is as many columns as rows.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderHeight = min(termHeight-loopconfig.HUDRows, loopconfig.MaxTermHeight)
	renderHeight = max(renderHeight, 1)
	renderWidth = max(min(renderHeight, termWidth), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = loopconfig.HUDRows + max((termHeight-loopconfig.HUDRows-renderHeight)/2, 0)
	return
}

// updateGame advances the session's world by one frame.
func (c *Client) updateGame() {
	before := c.world.State()
	out := c.world.Tick(c.state.delta, c.state.Input)

	if before == world.StateIdle && c.world.State() == world.StatePlaying {
		input.ResetKeyInput(c.inputStream)
		c.state.HasLastGame = false
		c.state.Rank = 0
		c.state.PersonalBest = false
	}

	if out.GameOver {
		c.state.LastGame = out
		c.state.HasLastGame = true
		c.state.Rank = 0
		c.state.PersonalBest = false
		c.server.ReportGameOver(c.handle.ID, out.Score, out.Level)
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
