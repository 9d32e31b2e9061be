package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/dispatch"
)

func newTestDashboard(t *testing.T, src *fakeSource, date string) *Dashboard {
	t.Helper()
	exec := dispatch.New(dispatch.Config{Shards: 4, QueueSize: 16})
	t.Cleanup(exec.Stop)
	return New(src, exec, date)
}

func TestDashboard_RefreshLoadsAllPanels(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	src.addEntry(clientEntry("2024-05-01", "today"))
	src.addEntry(clientEntry("2022-05-01", "two years ago"))
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()

	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.Wait(ctx))

	entry := d.Entry.State()
	assert.False(t, entry.Loading)
	require.NotNil(t, entry.Value)
	assert.Equal(t, "today", entry.Value.Title)

	history := d.OnThisDay.State().Value
	require.Len(t, history, 1)
	assert.Equal(t, "2022-05-01", history[0].Date)

	stats := d.Stats.State().Value
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.TotalEntries)
}

func TestDashboard_SetDateSkipsStats(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()

	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.Step(ctx, 1))
	require.NoError(t, d.Wait(ctx))

	assert.Equal(t, "2024-05-02", d.Date())
	assert.Equal(t, 1, src.count("stats"))
	assert.Equal(t, 2, src.count("entry"))
	assert.ErrorIs(t, d.SetDate(ctx, "May 2"), ErrInvalidDate)
}

func TestDashboard_StaleResultDropped(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	src.addEntry(clientEntry("2024-05-01", "old"))
	src.addEntry(clientEntry("2024-05-02", "new"))
	gate := make(chan struct{})
	src.gates["2024-05-01"] = gate

	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()
	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.SetDate(ctx, "2024-05-02"))
	close(gate)
	require.NoError(t, d.Wait(ctx))

	got := d.Entry.State().Value
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Title)
}

func TestPanel_CommitGeneration(t *testing.T) {
	t.Parallel()
	p := newPanel("x", "Failed", func(context.Context, string) (int, error) { return 0, nil })
	g1 := p.begin()
	g2 := p.begin()
	assert.False(t, p.commit(g1, 1, nil))
	assert.True(t, p.State().Loading)
	assert.True(t, p.commit(g2, 2, nil))
	assert.Equal(t, State[int]{Value: 2}, p.State())
}

func TestDashboard_PanelErrorIsInline(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	src.statsErr = errors.New("down")
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()

	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.Wait(ctx))

	st := d.Stats.State()
	assert.Equal(t, "Failed to load stats", st.Err)
	assert.Nil(t, st.Value)
	assert.Empty(t, d.Entry.State().Err)
}

func TestDashboard_SetAndClearMood(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()
	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.Wait(ctx))

	require.NoError(t, d.SetMood(ctx, "4"))
	v := d.Mood.State().Value
	require.NotNil(t, v.Record)
	firstID := v.Record.ID

	require.NoError(t, d.SetMood(ctx, "2"))
	v = d.Mood.State().Value
	assert.Equal(t, firstID, v.Record.ID, "second save patches the same record")
	assert.EqualValues(t, "2", v.Value)

	require.NoError(t, d.ClearMood(ctx))
	assert.Nil(t, d.Mood.State().Value.Record)
	require.NoError(t, d.ClearMood(ctx))
}

func TestDashboard_BumpCountsAndReloads(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()
	require.NoError(t, d.Bump(ctx))
	require.NoError(t, d.Bump(ctx))
	require.NoError(t, d.Wait(ctx))
	assert.Equal(t, 2, d.Refreshes())
	assert.Equal(t, 2, src.count("stats"))
}

func TestDashboard_QuoteFollowsDate(t *testing.T) {
	t.Parallel()
	d := newTestDashboard(t, newFakeSource(), "2024-05-01")
	assert.Equal(t, "Dalai Lama", d.Quote().Author)
}

func TestDashboard_MoodWaitsForSelectedDate(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	src.moods["2024-05-01"] = &client.Mood{ID: 7, Date: "2024-05-01", Mood: "2"}
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()
	require.NoError(t, d.Refresh(ctx))
	require.NoError(t, d.Wait(ctx))

	gate := make(chan struct{})
	src.mu.Lock()
	src.moodGate["2024-05-02"] = gate
	src.mu.Unlock()
	require.NoError(t, d.SetDate(ctx, "2024-05-02"))

	assert.ErrorIs(t, d.SetMood(ctx, "5"), ErrMoodLoading)
	assert.ErrorIs(t, d.ClearMood(ctx), ErrMoodLoading)

	close(gate)
	require.NoError(t, d.Wait(ctx))
	require.NoError(t, d.SetMood(ctx, "5"))

	rec := d.Mood.State().Value.Record
	require.NotNil(t, rec)
	assert.NotEqual(t, int64(7), rec.ID)
	assert.Equal(t, "2024-05-02", rec.Date)

	src.mu.Lock()
	prev := src.moods["2024-05-01"]
	src.mu.Unlock()
	require.NotNil(t, prev)
	assert.EqualValues(t, "2", prev.Mood)
}

func TestDashboard_MoodIgnoresOtherDayRecord(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	old := &client.Mood{ID: 7, Date: "2024-05-01", Mood: "3"}
	src.moods["2024-05-01"] = old
	d := newTestDashboard(t, src, "2024-05-02")
	ctx := context.Background()

	// a failed reload leaves the previous day's value in place
	d.Mood.set(&client.MoodView{Record: old, Value: old.Mood})

	require.NoError(t, d.ClearMood(ctx))
	src.mu.Lock()
	_, kept := src.moods["2024-05-01"]
	src.mu.Unlock()
	assert.True(t, kept)

	require.NoError(t, d.SetMood(ctx, "4"))
	rec := d.Mood.State().Value.Record
	require.NotNil(t, rec)
	assert.Equal(t, "2024-05-02", rec.Date)
	assert.EqualValues(t, "3", old.Mood)
}
