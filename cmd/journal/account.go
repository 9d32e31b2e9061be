package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/printers"
)

type sessionJSON struct {
	Email     string `json:"email,omitempty"`
	SessionID string `json:"session_id"`
	CSRFToken string `json:"csrf_token"`
}

// printSession prints the cookie pair as shell exports so later commands
// can reuse the session without signing in again.
func (a *app) printSession(cmd *cobra.Command, email string, s *client.Session) error {
	out := sessionJSON{Email: email, SessionID: s.SessionID(), CSRFToken: s.CSRFToken()}
	if a.asJSON {
		return printers.JSON(cmd.OutOrStdout(), out)
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Signed in as %s.\n", email)
	writeExport(w, "JOURNAL_SESSION_ID", out.SessionID)
	writeExport(w, "JOURNAL_CSRF_TOKEN", out.CSRFToken)
	return nil
}

func writeExport(w io.Writer, name, value string) {
	_, _ = fmt.Fprintf(w, "export %s=%s\n", name, value)
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the session for reuse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.HasPassword() {
				return errors.New("login needs --email and --password (or JOURNAL_EMAIL and JOURNAL_PASSWORD)")
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := client.New(a.cfg.BaseURL, client.WithHTTPTimeout(a.cfg.HTTPTimeout))
			if err != nil {
				return err
			}
			start := time.Now()
			if err := c.SignIn(ctx, client.Credentials{Email: a.cfg.Email, Password: a.cfg.Password}); err != nil {
				return failed("sign in", err)
			}
			log.Debug().Str("email", a.cfg.Email).Dur("elapsed", time.Since(start)).Msg("login completed")
			return a.printSession(cmd, a.cfg.Email, c.Session())
		},
	}
}

func newSignUpCmd(a *app) *cobra.Command {
	var first, last, confirm string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.HasPassword() {
				return errors.New("signup needs --email and --password")
			}
			if confirm != a.cfg.Password {
				return errors.New("passwords do not match")
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := client.New(a.cfg.BaseURL, client.WithHTTPTimeout(a.cfg.HTTPTimeout))
			if err != nil {
				return err
			}
			in := client.SignUpInput{FirstName: first, LastName: last, Email: a.cfg.Email, Password: a.cfg.Password}
			if err := c.SignUp(ctx, in); err != nil {
				return failed("sign up", err)
			}
			log.Debug().Str("email", a.cfg.Email).Msg("signup completed")
			return a.printSession(cmd, a.cfg.Email, c.Session())
		},
	}
	cmd.Flags().StringVar(&first, "first-name", "", "First name")
	cmd.Flags().StringVar(&last, "last-name", "", "Last name")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Repeat the password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the server session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			if err := c.Logout(ctx); err != nil {
				return failed("sign out", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Report whether the configured credentials work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			w := cmd.OutOrStdout()
			c, err := a.connect(ctx)
			if errors.Is(err, errNoCredentials) {
				_, _ = fmt.Fprintln(w, "not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			ok, err := c.Authenticated(ctx)
			if err != nil {
				return failed("check session", err)
			}
			if !ok {
				_, _ = fmt.Fprintln(w, "not signed in")
				return nil
			}
			who := a.cfg.Email
			if who == "" {
				who = "session " + abbreviate(a.cfg.SessionID)
			}
			_, _ = fmt.Fprintf(w, "signed in to %s as %s\n", a.cfg.BaseURL, who)
			return nil
		},
	}
}

func abbreviate(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}

func newSidebarCmd(a *app) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		store, err := a.prefs()
		if err != nil {
			return err
		}
		return a.printSidebar(cmd, store.SidebarOpen())
	}
	cmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Show or toggle the sidebar preference",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print whether the sidebar is open",
		Args:  cobra.NoArgs,
		RunE:  show,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip the sidebar between open and closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}
			open, err := store.ToggleSidebar()
			if err != nil {
				return err
			}
			log.Debug().Bool("open", open).Str("dir", store.Dir()).Msg("sidebar toggled")
			return a.printSidebar(cmd, open)
		},
	})
	return cmd
}

func (a *app) printSidebar(cmd *cobra.Command, open bool) error {
	return a.emit(cmd, map[string]bool{"sidebar_open": open}, func(pp *printers.PrettyPrint) { pp.Sidebar(open) })
}
