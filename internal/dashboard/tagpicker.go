package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/bradenpeterson/JournalApp/client"
)

// PickOutcome says what the caller should do after a pick.
type PickOutcome int

const (
	// Attached means the tag is now on the day's entry.
	Attached PickOutcome = iota
	// NeedsEntry means the day has no entry yet; open a new-entry editor
	// for the date.
	NeedsEntry
)

// TagPicker suggests tags by substring and attaches the picked one to the
// entry of the dashboard's current date.
type TagPicker struct {
	src      Source
	date     func() string
	onChange func(context.Context) error

	mu          sync.Mutex
	gen         uint64
	suggestions []client.Tag
}

// Suggest fetches suggestions for filter. Results of an older call that
// finishes after a newer one started are discarded.
func (tp *TagPicker) Suggest(ctx context.Context, filter string) ([]client.Tag, error) {
	tp.mu.Lock()
	tp.gen++
	gen := tp.gen
	tp.mu.Unlock()

	tags, err := tp.src.SuggestTags(ctx, filter)
	if err != nil {
		return nil, err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	if gen == tp.gen {
		tp.suggestions = tags
	}
	return tags, nil
}

// Suggestions returns the latest committed suggestions.
func (tp *TagPicker) Suggestions() []client.Tag {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return append([]client.Tag(nil), tp.suggestions...)
}

// Pick attaches tagID to the current date's entry.
func (tp *TagPicker) Pick(ctx context.Context, tagID int64) (PickOutcome, error) {
	_, err := tp.src.AttachTag(ctx, tp.date(), tagID)
	if errors.Is(err, client.ErrNoEntryForDate) {
		return NeedsEntry, nil
	}
	if err != nil {
		return Attached, err
	}
	return Attached, tp.changed(ctx)
}

// Create makes a tag from name and attaches it. The tag is returned
// whenever it was created, even if the attach failed.
func (tp *TagPicker) Create(ctx context.Context, name string) (*client.Tag, PickOutcome, error) {
	tag, _, err := tp.src.CreateAndAttachTag(ctx, tp.date(), name)
	if errors.Is(err, client.ErrNoEntryForDate) {
		return tag, NeedsEntry, nil
	}
	if err != nil {
		return tag, Attached, err
	}
	tp.mu.Lock()
	tp.suggestions = append([]client.Tag{*tag}, tp.suggestions...)
	tp.mu.Unlock()
	return tag, Attached, tp.changed(ctx)
}

func (tp *TagPicker) changed(ctx context.Context) error {
	if tp.onChange == nil {
		return nil
	}
	return tp.onChange(ctx)
}
