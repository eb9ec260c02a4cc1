// Package loop runs a complete game in the current process: a private hub
// and a single client sharing the local terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/audio"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/draw"
	"github.com/tomz197/spaceship/internal/loop/client"
	"github.com/tomz197/spaceship/internal/loop/server"
)

// hubDrainTimeout bounds how long Run waits for the hub to record the last
// game after the client quits.
const hubDrainTimeout = 2 * time.Second

// Options configures a local game.
type Options struct {
	Config       *config.Config
	Username     string
	Store        server.ScoreStore // nil disables the leaderboard
	Logger       *log.Logger
	Sound        audio.Sink
	TermSizeFunc draw.TermSizeFunc
}

// Run starts the hub, plays until the player quits or ctx is cancelled and
// then stops the hub.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}

	hubCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := server.NewServer(opts.Store, opts.Logger)
	done := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(done)
	}()

	c := client.NewClient(hub, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Game:         cfg.Game,
		Levels:       cfg.Levels,
		Logger:       opts.Logger,
		Sound:        opts.Sound,
	})
	err := c.Run(ctx)

	// Returns once the hub has processed the client's departure
	hub.Shutdown(hubDrainTimeout)
	cancel()
	<-done
	return err
}
