// Package printers renders journal data for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dashboard"
	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// PrettyPrint writes human output. A nil Out means color.Output.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) title(s string) {
	_, _ = color.New(color.Bold, color.Underline).Fprintln(pp.out(), s)
}

func (pp *PrettyPrint) none(s string) {
	_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), " %s\n", s)
}

// Entry prints one entry in full. A nil entry prints a placeholder for date.
func (pp *PrettyPrint) Entry(date string, e *client.Entry) {
	pp.title(dates.FormatHuman(date))
	if e == nil {
		pp.none("No entry for this day.")
		return
	}
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	if pp.ShowID {
		tbl.AddRow(faint.Sprint("id"), e.ID)
	}
	if e.Title != "" {
		tbl.AddRow(faint.Sprint("title"), color.New(color.Bold).Sprint(e.Title))
	}
	if e.Mood != "" {
		tbl.AddRow(faint.Sprint("mood"), e.Mood.Label())
	}
	if len(e.Tags) > 0 {
		tbl.AddRow(faint.Sprint("tags"), tagNames(e.Tags))
	}
	if e.Image != nil && *e.Image != "" {
		tbl.AddRow(faint.Sprint("image"), *e.Image)
	}
	tbl.AddRow(faint.Sprint("words"), e.WordCount)
	if e.IsPrivate {
		tbl.AddRow(faint.Sprint("private"), "yes")
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if e.Content != "" {
		_, _ = fmt.Fprintf(pp.out(), "\n%s\n", e.Content)
	}
}

// Entries prints a compact listing under heading.
func (pp *PrettyPrint) Entries(heading string, entries []client.Entry) {
	c := color.New(color.Faint)
	_, _ = color.New(color.Bold, color.Underline).Fprint(pp.out(), heading)
	switch len(entries) {
	case 1:
		_, _ = c.Fprintln(pp.out(), " - 1 entry")
	default:
		_, _ = c.Fprintf(pp.out(), " - %d entries\n", len(entries))
	}
	if len(entries) == 0 {
		pp.none("none")
		return
	}

	y := color.New(color.FgHiYellow, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	for _, e := range entries {
		row := []interface{}{e.Date, entryTitle(e), e.Mood.Label(), tagNames(e.Tags)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Tags prints the tag list.
func (pp *PrettyPrint) Tags(tags []client.Tag) {
	pp.title("Tags")
	if len(tags) == 0 {
		pp.none("none")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"))
	for _, t := range tags {
		tbl.AddRow(t.ID, t.Name)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Mood prints the resolved mood for date.
func (pp *PrettyPrint) Mood(date string, v *client.MoodView) {
	if v == nil || v.Value == "" {
		_, _ = fmt.Fprintf(pp.out(), "%s: ", date)
		pp.none("no mood recorded")
		return
	}
	label := color.New(color.Bold).Sprint(v.Value.Label())
	suffix := ""
	if v.Legacy {
		suffix = color.New(color.Faint).Sprint(" (from entry)")
	}
	_, _ = fmt.Fprintf(pp.out(), "%s: %s%s\n", date, label, suffix)
}

// Stats prints the streak and total counters.
func (pp *PrettyPrint) Stats(s *client.Stats) {
	pp.title("Stats")
	if s == nil {
		pp.none("unavailable")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Day streak", s.DayStreak)
	tbl.AddRow("Week streak", s.WeekStreak)
	tbl.AddRow("Entries", s.TotalEntries)
	tbl.AddRow("Words", s.TotalWords)
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Quote prints the quote of the day.
func (pp *PrettyPrint) Quote(q dashboard.Quote) {
	_, _ = color.New(color.Italic).Fprintf(pp.out(), "%q\n", q.Text)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "  - %s\n", q.Author)
}

// Sidebar prints the sidebar preference.
func (pp *PrettyPrint) Sidebar(open bool) {
	state := "closed"
	if open {
		state = "open"
	}
	_, _ = fmt.Fprintf(pp.out(), "sidebar: %s\n", state)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func entryTitle(e client.Entry) string {
	if e.Title != "" {
		return e.Title
	}
	return "(untitled)"
}

func tagNames(tags []client.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, ", ")
}
