package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/config"
	applog "github.com/tomz197/spaceship/internal/logging"
	loopconfig "github.com/tomz197/spaceship/internal/loop/config"
	"github.com/tomz197/spaceship/internal/scores"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// leaderboard is the read side of the score store.
type leaderboard interface {
	Top(ctx context.Context, n int) ([]scores.Entry, error)
}

type pageData struct {
	SSHHost string
	SSHPort string
	Scores  []scores.Entry
}

// landingHandler serves the connect instructions and the current leaderboard.
type landingHandler struct {
	sshHost string
	sshPort string
	board   leaderboard // nil hides the table
	log     *log.Logger
}

func (h *landingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := pageData{SSHHost: h.sshHost, SSHPort: h.sshPort}
	if h.board != nil {
		top, err := h.board.Top(r.Context(), loopconfig.LeaderboardSize)
		if err != nil {
			// Serve the page without scores rather than failing
			h.log.Error("failed to load leaderboard", "err", err)
		}
		data.Scores = top
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.Error("failed to render page", "err", err)
	}
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := applog.New(os.Stderr, cfg.Logging, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	h := &landingHandler{
		sshHost: cfg.Web.SSHDisplayHost,
		sshPort: cfg.SSH.Port,
		log:     logger,
	}
	if cfg.Scores.Path != "" {
		store, err := scores.Open(cfg.Scores.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		h.board = store
	}

	mux := http.NewServeMux()
	mux.Handle("/", h)
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Web.Host, cfg.Web.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return err
	}

	logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
