package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/spaceship/internal/audio/speaker"
	"github.com/tomz197/spaceship/internal/config"
	"github.com/tomz197/spaceship/internal/logging"
	"github.com/tomz197/spaceship/internal/loop"
	"github.com/tomz197/spaceship/internal/loop/client"
	"github.com/tomz197/spaceship/internal/scores"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.OpenFile(cfg.Logging, "game")
	if err != nil {
		return err
	}
	defer closeLog()

	var store *scores.Store
	opts := loop.Options{
		Config:   cfg,
		Username: client.SanitizeUsername(os.Getenv("USER")),
		Logger:   logger,
	}
	if cfg.Scores.Path != "" {
		store, err = scores.Open(cfg.Scores.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
	}

	if cfg.Audio.Enabled {
		sm := speaker.New(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Close()
			opts.Sound = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("starting local game", "user", opts.Username, "scores", cfg.Scores.Path)
	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
}
