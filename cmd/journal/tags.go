package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dashboard"
	"github.com/bradenpeterson/JournalApp/internal/dispatch"
	"github.com/bradenpeterson/JournalApp/internal/printers"
)

const tagListPageSize = 100

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags and attach them to entries",
	}
	cmd.AddCommand(newTagListCmd(a))
	cmd.AddCommand(newTagSuggestCmd(a))
	cmd.AddCommand(newTagAddCmd(a))
	cmd.AddCommand(newTagCreateCmd(a))
	cmd.AddCommand(newTagRenameCmd(a))
	cmd.AddCommand(newTagDeleteCmd(a))
	return cmd
}

func newTagListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			var tags []client.Tag
			for page := 1; ; page++ {
				p, err := c.ListTags(ctx, page, tagListPageSize)
				if err != nil {
					return failed("load tags", err)
				}
				tags = append(tags, p.Results...)
				if !p.HasMore() {
					break
				}
			}
			return a.emit(cmd, tags, func(pp *printers.PrettyPrint) { pp.Tags(tags) })
		},
	}
}

func newTagSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest FILTER",
		Short: "Show up to five tags whose names contain FILTER",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			c, err := a.connect(ctx)
			if err != nil {
				return err
			}
			tags, err := c.SuggestTags(ctx, args[0])
			if err != nil {
				return failed("load tags", err)
			}
			return a.emit(cmd, tags, func(pp *printers.PrettyPrint) { pp.Tags(tags) })
		},
	}
}

func newTagAddCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "add TAG",
		Short: "Attach an existing tag, by id or exact name, to a day's entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateFlag(date)
			if err != nil {
				return err
			}
			return a.withPicker(cmd, d, func(ctx context.Context, tp *dashboard.TagPicker) (dashboard.PickOutcome, error) {
				id, err := resolveTag(ctx, tp, args[0])
				if err != nil {
					return dashboard.Attached, err
				}
				return tp.Pick(ctx, id)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Entry date (default today)")
	return cmd
}

func newTagCreateCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tag and attach it to a day's entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateFlag(date)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			return a.withPicker(cmd, d, func(ctx context.Context, tp *dashboard.TagPicker) (dashboard.PickOutcome, error) {
				tag, outcome, err := tp.Create(ctx, name)
				if tag != nil {
					log.Debug().Int64("tag_id", tag.ID).Str("name", tag.Name).Msg("tag created")
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Created tag %q (id %d).\n", tag.Name, tag.ID)
				}
				return outcome, err
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Entry date (default today)")
	return cmd
}

// withPicker runs pick against a dashboard for date and prints the day's
// entry as reloaded by the dashboard afterwards.
func (a *app) withPicker(cmd *cobra.Command, date string, pick func(context.Context, *dashboard.TagPicker) (dashboard.PickOutcome, error)) error {
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
	outcome, err := pick(ctx, d.TagPicker())
	if err != nil {
		return failed("attach tag", err)
	}
	if outcome == dashboard.NeedsEntry {
		return fmt.Errorf("no entry for %s yet: write one with `journal create --date %s` first", date, date)
	}
	if err := d.Wait(ctx); err != nil {
		return err
	}
	log.Debug().Str("date", date).Dur("elapsed", time.Since(start)).Msg("tag attached")

	st := d.Entry.State()
	if st.Err != "" {
		return errors.New(st.Err)
	}
	return a.emit(cmd, st.Value, func(pp *printers.PrettyPrint) { pp.Entry(date, st.Value) })
}

// resolveTag accepts a numeric id or a name matched case-insensitively
// against the picker's suggestions.
func resolveTag(ctx context.Context, tp *dashboard.TagPicker, ref string) (int64, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	tags, err := tp.Suggest(ctx, ref)
	if err != nil {
		return 0, err
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, strings.TrimSpace(ref)) {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("no tag named %q: use `journal tag create` to make one", ref)
}

func newTagRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a tag",
		Args:  cobra.MinimumNArgs(2),
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
			tag, err := c.RenameTag(ctx, id, strings.Join(args[1:], " "))
			if err != nil {
				return failed("rename tag", err)
			}
			return a.emit(cmd, tag, func(pp *printers.PrettyPrint) { pp.Tags([]client.Tag{*tag}) })
		},
	}
}

func newTagDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tag and remove it from every entry",
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
			if err := c.DeleteTag(ctx, id); err != nil {
				return failed("delete tag", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d.\n", id)
			return nil
		},
	}
}
