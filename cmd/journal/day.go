package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dashboard"
	"github.com/bradenpeterson/JournalApp/internal/dispatch"
	"github.com/bradenpeterson/JournalApp/internal/printers"
	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

type moodJSON struct {
	Value  client.MoodValue `json:"mood"`
	Label  string           `json:"label,omitempty"`
	Source string           `json:"source"`
}

func moodOf(v *client.MoodView) *moodJSON {
	if v == nil {
		return nil
	}
	m := &moodJSON{Value: v.Value, Source: "none"}
	switch {
	case v.Record != nil:
		m.Source = "mood_record"
	case v.Legacy:
		m.Source = "entry"
	}
	if v.Value != "" {
		m.Label = v.Value.Label()
	}
	return m
}

type quoteJSON struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type dayJSON struct {
	Date      string         `json:"date"`
	Entry     *client.Entry  `json:"entry"`
	Mood      *moodJSON      `json:"mood"`
	OnThisDay []client.Entry `json:"on_this_day,omitempty"`
	Stats     *client.Stats  `json:"stats,omitempty"`
	Quote     quoteJSON      `json:"quote"`
	Errors    []string       `json:"errors,omitempty"`
}

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's entry, mood and quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showDay(cmd, dates.Today())
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var offset int
	cmd := &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the day view for DATE (YYYY-MM-DD, default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}
			return a.showDay(cmd, dates.AddDays(date, offset))
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Move the date by this many days, e.g. -1 for the day before")
	return cmd
}

// showDay loads every dashboard panel for date and prints them. The
// on-this-day and stats panels only print when the sidebar is open.
func (a *app) showDay(cmd *cobra.Command, date string) error {
	if !dates.Valid(date) {
		return dashboard.ErrInvalidDate
	}
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
	log.Debug().Str("date", date).Dur("elapsed", time.Since(start)).Msg("day view loaded")

	sidebar := true
	if store, err := a.prefs(); err != nil {
		log.Warn().Err(err).Msg("preferences unavailable, showing sidebar")
	} else {
		sidebar = store.SidebarOpen()
	}

	entry, mood := d.Entry.State(), d.Mood.State()
	otd, stats := d.OnThisDay.State(), d.Stats.State()
	q := d.Quote()

	view := dayJSON{
		Date:  date,
		Entry: entry.Value,
		Mood:  moodOf(mood.Value),
		Quote: quoteJSON{Text: q.Text, Author: q.Author},
	}
	var errs []string
	for _, e := range []string{entry.Err, mood.Err} {
		if e != "" {
			errs = append(errs, e)
		}
	}
	if sidebar {
		view.OnThisDay, view.Stats = otd.Value, stats.Value
		for _, e := range []string{otd.Err, stats.Err} {
			if e != "" {
				errs = append(errs, e)
			}
		}
	}
	view.Errors = errs

	return a.emit(cmd, view, func(pp *printers.PrettyPrint) {
		for _, e := range errs {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if entry.Err == "" {
			pp.Entry(date, entry.Value)
		}
		if mood.Err == "" {
			pp.Mood(date, mood.Value)
		}
		if sidebar {
			if otd.Err == "" {
				pp.Entries("On this day", otd.Value)
			}
			if stats.Err == "" {
				pp.Stats(stats.Value)
			}
		}
		pp.Quote(q)
	})
}

// dateArg returns args[i] as a validated date, or today when absent.
func dateArg(args []string, i int) (string, error) {
	if len(args) <= i || args[i] == "" {
		return dates.Today(), nil
	}
	if !dates.Valid(args[i]) {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[i])
	}
	return args[i], nil
}

func dateFlag(v string) (string, error) {
	if v == "" {
		return dates.Today(), nil
	}
	return dateArg([]string{v}, 0)
}
