package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dashboard"
	"github.com/bradenpeterson/JournalApp/internal/printers"
)

func newListCmd(a *app) *cobra.Command {
	var from, to, mood string
	var tags []int64
	var page int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := client.EntryFilter{StartDate: from, EndDate: to, Tags: tags, Page: page}
			if mood != "" {
				v, err := parseMood(mood)
				if err != nil {
					return err
				}
				filter.Mood = v
			}
			return a.listEntries(cmd, "Entries", filter, all)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Only entries on or after this date")
	cmd.Flags().StringVar(&to, "to", "", "Only entries on or before this date")
	cmd.Flags().StringVar(&mood, "mood", "", "Only entries with this mood (1-5)")
	cmd.Flags().Int64SliceVar(&tags, "tag", nil, "Only entries carrying every given tag id")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination and list every match")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT",
		Short: "Search entry titles and content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.listEntries(cmd, fmt.Sprintf("Results for %q", text), client.EntryFilter{Search: text}, true)
		},
	}
}

func (a *app) listEntries(cmd *cobra.Command, heading string, filter client.EntryFilter, all bool) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()
	c, err := a.connect(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	var entries []client.Entry
	if all {
		entries, err = c.ListAllEntries(ctx, filter)
	} else {
		var p *client.EntryPage
		p, err = c.ListEntries(ctx, filter)
		if p != nil {
			entries = p.Results
		}
	}
	if err != nil {
		return failed("load entries", err)
	}
	log.Debug().Int("count", len(entries)).Bool("all", all).Dur("elapsed", time.Since(start)).Msg("entries listed")

	return a.emit(cmd, entries, func(pp *printers.PrettyPrint) {
		pp.Entries(heading, entries)
	})
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			e, err := c.GetEntry(ctx, id)
			if err != nil {
				return failed("load entry", err)
			}
			return a.emit(cmd, e, func(pp *printers.PrettyPrint) { pp.Entry(e.Date, e) })
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var date, title, content, mood string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new entry",
		Long:  "Write a new entry. Pass --content - to read the body from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateFlag(date)
			if err != nil {
				return err
			}
			body, err := readContent(cmd, content)
			if err != nil {
				return err
			}
			draft := dashboard.Draft{Date: d, Title: title, Content: body}
			if mood != "" {
				if draft.Mood, err = parseMood(mood); err != nil {
					return err
				}
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}

			log.Debug().Str("date", d).Str("title", title).Int("content_len", len(body)).Msg("creating entry")
			start := time.Now()
			ed := dashboard.NewEditor(c, d)
			if err := ed.Update(draft); err != nil {
				return err
			}
			if err := ed.Submit(ctx); err != nil {
				return failed("save entry", err)
			}
			log.Debug().Int64("entry_id", ed.ID()).Dur("elapsed", time.Since(start)).Msg("entry created")

			e := ed.Record()
			return a.emit(cmd, e, func(pp *printers.PrettyPrint) { pp.Entry(e.Date, e) })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Entry date (default today)")
	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&content, "content", "", "Entry body, or - for stdin")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood on the entry itself (1-5)")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var date, title, content, mood string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an entry; only the given flags are modified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("date") && !flags.Changed("title") && !flags.Changed("content") && !flags.Changed("mood") {
				return fmt.Errorf("nothing to change: pass --date, --title, --content or --mood")
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			ed, err := dashboard.OpenEditor(ctx, c, id)
			if err != nil {
				return failed("load entry", err)
			}
			if err := ed.Edit(); err != nil {
				return err
			}

			draft := ed.Draft()
			if flags.Changed("date") {
				if draft.Date, err = dateFlag(date); err != nil {
					return err
				}
			}
			if flags.Changed("title") {
				draft.Title = title
			}
			if flags.Changed("content") {
				if draft.Content, err = readContent(cmd, content); err != nil {
					return err
				}
			}
			if flags.Changed("mood") {
				draft.Mood = ""
				if mood != "" {
					if draft.Mood, err = parseMood(mood); err != nil {
						return err
					}
				}
			}
			if err := ed.Update(draft); err != nil {
				return err
			}
			if err := ed.Save(ctx); err != nil {
				return failed("save entry", err)
			}
			log.Debug().Int64("entry_id", id).Msg("entry updated")

			e := ed.Record()
			return a.emit(cmd, e, func(pp *printers.PrettyPrint) { pp.Entry(e.Date, e) })
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "New date")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body, or - for stdin")
	cmd.Flags().StringVar(&mood, "mood", "", "New entry mood (1-5, empty clears)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			ed, err := dashboard.OpenEditor(ctx, c, id)
			if err != nil {
				return failed("load entry", err)
			}
			if err := ed.Delete(ctx); err != nil {
				return failed("delete entry", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d.\n", id)
			return nil
		},
	}
}

func newUploadImageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image ID FILE",
		Short: "Attach an image file to an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			start := time.Now()
			e, err := c.UploadEntryImage(ctx, id, filepath.Base(args[1]), f)
			if err != nil {
				return failed("upload image", err)
			}
			log.Debug().Int64("entry_id", id).Str("file", args[1]).Dur("elapsed", time.Since(start)).Msg("image uploaded")
			return a.emit(cmd, e, func(pp *printers.PrettyPrint) { pp.Entry(e.Date, e) })
		},
	}
}

func newOnThisDayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "on-this-day [DATE]",
		Short: "List entries from the same day in other years",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args, 0)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			entries, err := c.OnThisDay(ctx, date)
			if err != nil {
				return failed("load entries", err)
			}
			return a.emit(cmd, entries, func(pp *printers.PrettyPrint) {
				pp.Entries("On this day", entries)
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			s, err := c.Stats(ctx)
			if err != nil {
				return failed("load stats", err)
			}
			return a.emit(cmd, s, func(pp *printers.PrettyPrint) { pp.Stats(s) })
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseMood(s string) (client.MoodValue, error) {
	v := client.MoodValue(strings.TrimSpace(s))
	if !v.Valid() {
		return "", fmt.Errorf("invalid mood %q: use 1-5", s)
	}
	return v, nil
}

// readContent returns v, or stdin when v is "-".
func readContent(cmd *cobra.Command, v string) (string, error) {
	if v != "-" {
		return v, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}
