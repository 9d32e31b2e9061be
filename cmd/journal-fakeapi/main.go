// Command journal-fakeapi runs the in-memory journal backend for local
// development against the CLI and MCP server.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/internal/config"
	"github.com/bradenpeterson/JournalApp/internal/fakeapi"
	"github.com/bradenpeterson/JournalApp/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("journal-fakeapi exited with error")
		os.Exit(1)
	}
}

type options struct {
	addr         string
	seedEmail    string
	seedPassword string
	pageSize     int
}

func parseFlags(args []string, cfg *config.Config) (options, error) {
	var o options
	fs := flag.NewFlagSet("journal-fakeapi", flag.ContinueOnError)
	fs.StringVar(&o.addr, "addr", cfg.FakeAPIAddr, "Listen address")
	fs.StringVar(&o.seedEmail, "seed-email", cfg.Email, "Email of an account created at startup")
	fs.StringVar(&o.seedPassword, "seed-password", cfg.Password, "Password of the seeded account")
	fs.IntVar(&o.pageSize, "page-size", 0, "Entries per page (default 10)")
	return o, fs.Parse(args)
}

func run(args []string) error {
	log.Logger = logger.New("journal-fakeapi")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	zerolog.SetGlobalLevel(cfg.Level())
	o, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := newBackend(o)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              o.addr,
		Handler:           buildRouter(api),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", o.addr).Msg("fake journal backend starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newBackend builds the fake API and seeds the configured account.
func newBackend(o options) (*fakeapi.Server, error) {
	api := fakeapi.New(fakeapi.Options{PageSize: o.pageSize})
	if o.seedEmail != "" && o.seedPassword != "" {
		u, err := api.Store().AddUser(fakeapi.User{Email: o.seedEmail, Password: o.seedPassword})
		if err != nil {
			return nil, err
		}
		log.Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("seeded account")
	}
	return api, nil
}

// buildRouter mounts the fake API at the root and Prometheus metrics at
// /metrics.
func buildRouter(api http.Handler) *mux.Router {
	root := mux.NewRouter()
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	root.PathPrefix("/").Handler(api)
	return root
}
