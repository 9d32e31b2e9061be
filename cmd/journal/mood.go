package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dashboard"
	"github.com/bradenpeterson/JournalApp/internal/dispatch"
	"github.com/bradenpeterson/JournalApp/internal/printers"
)

func newMoodCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Read or record the mood for a day",
	}
	cmd.AddCommand(newMoodGetCmd(a))
	cmd.AddCommand(newMoodSetCmd(a))
	cmd.AddCommand(newMoodClearCmd(a))
	return cmd
}

func newMoodGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [DATE]",
		Short: "Show the mood for DATE (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}
			return a.withMood(cmd, date, nil)
		},
	}
}

func newMoodSetCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "set MOOD",
		Short: "Record MOOD (1 very sad .. 5 very happy) for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseMood(args[0])
			if err != nil {
				return err
			}
			d, err := dateFlag(date)
			if err != nil {
				return err
			}
			return a.withMood(cmd, d, func(ctx context.Context, db *dashboard.Dashboard) error {
				return db.SetMood(ctx, value)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to record (default today)")
	return cmd
}

func newMoodClearCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the mood record for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateFlag(date)
			if err != nil {
				return err
			}
			return a.withMood(cmd, d, func(ctx context.Context, db *dashboard.Dashboard) error {
				return db.ClearMood(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to clear (default today)")
	return cmd
}

// withMood loads the mood panel for date, applies change when given, and
// prints the resulting mood.
func (a *app) withMood(cmd *cobra.Command, date string, change func(context.Context, *dashboard.Dashboard) error) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()
	c, err := a.connect(ctx)
	if err != nil {
		return err
	}
	dcfg, err := dispatch.LoadConfig()
	if err != nil {
		return err
	}
	exec := dispatch.New(dcfg)
	defer exec.Stop()

	start := time.Now()
	d := dashboard.New(c, exec, date)
	if err := d.Refresh(ctx); err != nil {
		return err
	}
	if err := d.Wait(ctx); err != nil {
		return err
	}
	if st := d.Mood.State(); st.Err != "" {
		return errors.New(st.Err)
	}
	if change != nil {
		if err := change(ctx, d); err != nil {
			return failed("save mood", err)
		}
	}
	st := d.Mood.State()
	if st.Value == nil {
		st.Value = &client.MoodView{}
	}
	log.Debug().Str("date", date).Str("mood", string(st.Value.Value)).Dur("elapsed", time.Since(start)).Msg("mood resolved")

	return a.emit(cmd, moodOf(st.Value), func(pp *printers.PrettyPrint) { pp.Mood(date, st.Value) })
}
