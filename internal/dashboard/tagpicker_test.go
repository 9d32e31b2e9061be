package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradenpeterson/JournalApp/client"
)

func TestTagPicker_PickAttachesAndBumps(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	e := src.addEntry(clientEntry("2024-05-01", "day"))
	src.tags = []client.Tag{{ID: 7, Name: "travel"}}
	d := newTestDashboard(t, src, "2024-05-01")
	ctx := context.Background()
	tp := d.TagPicker()

	got, err := tp.Suggest(ctx, "TRA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, tp.Suggestions(), 1)

	out, err := tp.Pick(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, Attached, out)
	assert.Equal(t, 1, d.Refreshes())

	stored, _ := src.GetEntry(ctx, e.ID)
	assert.True(t, stored.HasTag(7))
}

func TestTagPicker_NoEntryNeedsEntry(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	d := newTestDashboard(t, src, "2024-05-01")
	tp := d.TagPicker()

	out, err := tp.Pick(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, NeedsEntry, out)
	assert.Equal(t, 0, d.Refreshes())

	tag, out, err := tp.Create(context.Background(), "new-tag")
	require.NoError(t, err)
	assert.Equal(t, NeedsEntry, out)
	require.NotNil(t, tag, "created tag is still returned")
	assert.Equal(t, "new-tag", tag.Name)
}

func TestTagPicker_CreateAttaches(t *testing.T) {
	t.Parallel()
	src := newFakeSource()
	src.addEntry(clientEntry("2024-05-01", "day"))
	d := newTestDashboard(t, src, "2024-05-01")
	tp := d.TagPicker()

	tag, out, err := tp.Create(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, Attached, out)
	assert.Equal(t, "fresh", tp.Suggestions()[0].Name)
	assert.Equal(t, tag.ID, tp.Suggestions()[0].ID)
}
