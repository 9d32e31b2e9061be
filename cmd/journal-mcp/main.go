// Command journal-mcp serves journal tools to MCP hosts over stdio or
// streamable HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/config"
	"github.com/bradenpeterson/JournalApp/internal/logger"
	"github.com/bradenpeterson/JournalApp/internal/mcptools"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Error().Stack().Err(err).Msg("journal-mcp exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	// stdout carries the stdio protocol, so logs go to stderr
	log.Logger = logger.NewWithWriter(os.Stderr, "journal-mcp")
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	s, err := mcptools.NewServer(c, version)
	if err != nil {
		return err
	}

	if cfg.MCPTransport == config.TransportStdio {
		log.Info().Str("base_url", cfg.BaseURL).Msg("starting journal MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(ctx, cfg, s)
}

// connect signs in with the configured credentials, or restores the
// configured session.
func connect(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	c, err := client.New(cfg.BaseURL, client.WithHTTPTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.HasSession():
		c.Session().Restore(cfg.SessionID, cfg.CSRFToken)
		log.Info().Msg("using supplied session")
	case cfg.HasPassword():
		start := time.Now()
		if err := c.SignIn(ctx, client.Credentials{Email: cfg.Email, Password: cfg.Password}); err != nil {
			return nil, errors.New(client.UserMessage(err, "sign in failed: "+err.Error()))
		}
		log.Info().Str("email", cfg.Email).Dur("elapsed", time.Since(start)).Msg("signed in")
	default:
		return nil, errors.New("no credentials: set JOURNAL_EMAIL and JOURNAL_PASSWORD, or JOURNAL_SESSION_ID")
	}
	return c, nil
}

func newHTTPHandler(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
}

// serveHTTP serves streamable HTTP on cfg.MCPAddr until ctx is cancelled,
// then shuts down gracefully.
func serveHTTP(ctx context.Context, cfg *config.Config, s *server.MCPServer) error {
	streamSrv := newHTTPHandler(s)
	srv := &http.Server{
		Addr:        cfg.MCPAddr,
		Handler:     streamSrv,
		ReadTimeout: 5 * time.Second,
		// no write deadline: streaming responses stay open
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.MCPAddr).Msg("starting journal MCP server (streamable HTTP)")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mcp server shutdown")
	}
	log.Info().Msg("journal MCP server stopped")
	return nil
}
