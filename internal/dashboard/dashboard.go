// Package dashboard is the headless model behind the journal's day view:
// the entry, mood, on-this-day, stats and quote panels for a selected
// date, plus the tag picker and the entry editor. Panels refresh through a
// dispatch.Executor, one FIFO lane per panel.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dispatch"
	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// Source is what the dashboard reads and writes. *client.Client satisfies it.
type Source interface {
	EntryForDate(ctx context.Context, date string) (*client.Entry, error)
	MoodForDate(ctx context.Context, date string) (*client.MoodView, error)
	SetMood(ctx context.Context, date string, value client.MoodValue, current *client.Mood) (*client.Mood, error)
	ClearMood(ctx context.Context, record *client.Mood) error
	OnThisDay(ctx context.Context, date string) ([]client.Entry, error)
	Stats(ctx context.Context) (*client.Stats, error)
	SuggestTags(ctx context.Context, filter string) ([]client.Tag, error)
	AttachTag(ctx context.Context, date string, tagID int64) (*client.Entry, error)
	CreateAndAttachTag(ctx context.Context, date, name string) (*client.Tag, *client.Entry, error)
}

// Panel names double as dispatch keys.
const (
	PanelEntry     = "entry"
	PanelMood      = "mood"
	PanelOnThisDay = "on_this_day"
	PanelStats     = "stats"
)

// ErrInvalidDate is returned by SetDate for anything but YYYY-MM-DD.
var ErrInvalidDate = errors.New("dashboard: date must be YYYY-MM-DD")

// ErrMoodLoading is returned by SetMood and ClearMood while the mood panel
// is still loading the selected date.
var ErrMoodLoading = errors.New("dashboard: mood is still loading")

// Dashboard ties the panels to a selected date and a refresh counter.
type Dashboard struct {
	src  Source
	exec *dispatch.Executor

	Entry     *Panel[*client.Entry]
	Mood      *Panel[*client.MoodView]
	OnThisDay *Panel[[]client.Entry]
	Stats     *Panel[*client.Stats]

	mu        sync.Mutex
	date      string
	refreshes int
}

// New builds a dashboard for date (today when empty). Nothing loads until
// Refresh or SetDate is called.
func New(src Source, exec *dispatch.Executor, date string) *Dashboard {
	if date == "" {
		date = dates.Today()
	}
	d := &Dashboard{src: src, exec: exec, date: date}
	d.Entry = newPanel(PanelEntry, "Failed to load entry.", src.EntryForDate)
	d.Mood = newPanel(PanelMood, "Failed to load mood", src.MoodForDate)
	d.OnThisDay = newPanel(PanelOnThisDay, "Failed to load entries", src.OnThisDay)
	d.Stats = newPanel(PanelStats, "Failed to load stats", func(ctx context.Context, _ string) (*client.Stats, error) {
		return src.Stats(ctx)
	})
	return d
}

// Date returns the selected date.
func (d *Dashboard) Date() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.date
}

// Refreshes returns how many times Bump was called.
func (d *Dashboard) Refreshes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshes
}

// Quote returns the quote for the selected date.
func (d *Dashboard) Quote() Quote { return QuoteFor(d.Date()) }

// Refresh reloads every panel for the current date.
func (d *Dashboard) Refresh(ctx context.Context) error {
	date := d.Date()
	return d.submitAll(ctx, date, true)
}

// SetDate selects a new date and reloads the date-bound panels. Stats do
// not depend on the date and are left alone.
func (d *Dashboard) SetDate(ctx context.Context, date string) error {
	if !dates.Valid(date) {
		return ErrInvalidDate
	}
	d.mu.Lock()
	d.date = date
	d.mu.Unlock()
	return d.submitAll(ctx, date, false)
}

// Step moves the selected date by n days.
func (d *Dashboard) Step(ctx context.Context, n int) error {
	return d.SetDate(ctx, dates.AddDays(d.Date(), n))
}

// Bump records a mutation and reloads every panel, stats included.
func (d *Dashboard) Bump(ctx context.Context) error {
	d.mu.Lock()
	d.refreshes++
	date := d.date
	d.mu.Unlock()
	return d.submitAll(ctx, date, true)
}

// Wait blocks until every refresh submitted so far has finished.
func (d *Dashboard) Wait(ctx context.Context) error {
	for _, key := range []string{PanelEntry, PanelMood, PanelOnThisDay, PanelStats} {
		if err := d.exec.Barrier(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dashboard) submitAll(ctx context.Context, date string, withStats bool) error {
	errs := []error{
		submit(ctx, d.exec, d.Entry, date),
		submit(ctx, d.exec, d.Mood, date),
		submit(ctx, d.exec, d.OnThisDay, date),
	}
	if withStats {
		errs = append(errs, submit(ctx, d.exec, d.Stats, date))
	}
	return errors.Join(errs...)
}

func submit[T any](ctx context.Context, exec *dispatch.Executor, p *Panel[T], date string) error {
	gen := p.begin()
	err := exec.Submit(ctx, p.Name(), dispatch.JobFunc(func(jctx context.Context) error {
		return p.run(jctx, gen, date)
	}))
	if err != nil {
		var zero T
		p.commit(gen, zero, err)
	}
	return err
}

// SetMood records value for the selected date and updates the mood panel
// with the saved record.
func (d *Dashboard) SetMood(ctx context.Context, value client.MoodValue) error {
	date := d.Date()
	current, err := d.moodRecord(date)
	if err != nil {
		return err
	}
	m, err := d.src.SetMood(ctx, date, value, current)
	if err != nil {
		return err
	}
	d.Mood.set(&client.MoodView{Record: m, Value: m.Mood})
	return nil
}

// ClearMood deletes the day's mood record, if any.
func (d *Dashboard) ClearMood(ctx context.Context) error {
	rec, err := d.moodRecord(d.Date())
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	if err := d.src.ClearMood(ctx, rec); err != nil {
		return err
	}
	d.Mood.set(&client.MoodView{})
	return nil
}

// moodRecord returns the loaded mood record for date. A record left over
// from another date never counts.
func (d *Dashboard) moodRecord(date string) (*client.Mood, error) {
	st := d.Mood.State()
	if st.Loading {
		return nil, ErrMoodLoading
	}
	if st.Value == nil || st.Value.Record == nil || st.Value.Record.Date != date {
		return nil, nil
	}
	return st.Value.Record, nil
}

// TagPicker returns a picker bound to the dashboard's selected date. A
// successful attach bumps the dashboard.
func (d *Dashboard) TagPicker() *TagPicker {
	return &TagPicker{src: d.src, date: d.Date, onChange: d.Bump}
}
