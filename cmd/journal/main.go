// Command journal is a terminal client for the journal backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/config"
	"github.com/bradenpeterson/JournalApp/internal/logger"
	"github.com/bradenpeterson/JournalApp/internal/printers"
	"github.com/bradenpeterson/JournalApp/pkg/prefs"
)

const commandTimeout = 30 * time.Second

var errNoCredentials = errors.New("not signed in: set JOURNAL_EMAIL and JOURNAL_PASSWORD, or JOURNAL_SESSION_ID")

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand of one root command.
type app struct {
	cfg *config.Config

	baseURL  string
	email    string
	password string
	prefsDir string
	debug    bool
	asJSON   bool
	showID   bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "journal",
		Short:         "Read and write your journal from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.baseURL, "base-url", "", "Backend base URL (default $JOURNAL_BASE_URL or http://localhost:8000)")
	pf.StringVar(&a.email, "email", "", "Sign-in email (default $JOURNAL_EMAIL)")
	pf.StringVar(&a.password, "password", "", "Sign-in password (default $JOURNAL_PASSWORD)")
	pf.StringVar(&a.prefsDir, "prefs-dir", "", "Preferences directory (default $JOURNAL_PREFS_DIR or ~/.journalapp)")
	pf.BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")
	pf.BoolVar(&a.asJSON, "json", false, "Print JSON instead of tables")
	pf.BoolVar(&a.showID, "show-id", false, "Show record ids")

	rootCmd.AddCommand(newTodayCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newUploadImageCmd(a))
	rootCmd.AddCommand(newTagCmd(a))
	rootCmd.AddCommand(newMoodCmd(a))
	rootCmd.AddCommand(newOnThisDayCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newSignUpCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newWhoamiCmd(a))
	rootCmd.AddCommand(newSidebarCmd(a))

	return rootCmd
}

// init loads the environment config, applies flag overrides, validates the
// result and installs the console logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("email") {
		cfg.Email = a.email
	}
	if flags.Changed("password") {
		cfg.Password = a.password
	}
	if flags.Changed("prefs-dir") {
		cfg.PrefsDir = a.prefsDir
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return err
	}
	a.cfg = cfg

	log.Logger = logger.Console(cmd.ErrOrStderr(), cfg.Level())
	zerolog.SetGlobalLevel(cfg.Level())
	log.Debug().Str("base_url", cfg.BaseURL).Bool("session", cfg.HasSession()).Msg("debug logging enabled")
	return nil
}

// connect builds a client and authenticates it, preferring a supplied
// session over a fresh sign-in.
func (a *app) connect(ctx context.Context) (*client.Client, error) {
	opts := []client.Option{client.WithHTTPTimeout(a.cfg.HTTPTimeout)}
	if a.debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	c, err := client.New(a.cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	switch {
	case a.cfg.HasSession():
		c.Session().Restore(a.cfg.SessionID, a.cfg.CSRFToken)
		log.Debug().Msg("restored session")
	case a.cfg.HasPassword():
		start := time.Now()
		if err := c.SignIn(ctx, client.Credentials{Email: a.cfg.Email, Password: a.cfg.Password}); err != nil {
			return nil, errors.New(client.UserMessage(err, "Sign in failed."))
		}
		log.Debug().Str("email", a.cfg.Email).Dur("elapsed", time.Since(start)).Msg("signed in")
	default:
		return nil, errNoCredentials
	}
	return c, nil
}

func (a *app) printer(w io.Writer) *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: w, ShowID: a.showID}
}

func (a *app) prefs() (*prefs.Store, error) {
	return prefs.Open(a.cfg.PrefsDir)
}

// emit prints v as JSON when --json is set, otherwise calls pretty.
func (a *app) emit(cmd *cobra.Command, v any, pretty func(pp *printers.PrettyPrint)) error {
	if a.asJSON {
		return printers.JSON(cmd.OutOrStdout(), v)
	}
	pretty(a.printer(cmd.OutOrStdout()))
	return nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}

// failed turns a client error into the message a user should see.
func failed(action string, err error) error {
	if err == nil {
		return nil
	}
	return errors.New(client.UserMessage(err, fmt.Sprintf("failed to %s: %v", action, err)))
}
