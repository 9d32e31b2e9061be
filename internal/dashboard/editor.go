package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradenpeterson/JournalApp/client"
)

// Mode is the editor's state.
type Mode int

const (
	ModeNew Mode = iota
	ModeViewing
	ModeEditing
	ModeDeleted
)

func (m Mode) String() string {
	switch m {
	case ModeNew:
		return "new"
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrInvalidTransition is returned when an action does not apply to the
// editor's current mode.
var ErrInvalidTransition = errors.New("editor: invalid transition")

// EntryStore is what the editor persists through. *client.Client satisfies it.
type EntryStore interface {
	GetEntry(ctx context.Context, id int64) (*client.Entry, error)
	CreateEntry(ctx context.Context, in client.EntryInput) (*client.Entry, error)
	UpdateEntry(ctx context.Context, id int64, in client.EntryInput) (*client.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// Draft is the editable part of an entry.
type Draft struct {
	Date    string
	Title   string
	Content string
	Mood    client.MoodValue
}

func draftOf(e *client.Entry) Draft {
	return Draft{Date: e.Date, Title: e.Title, Content: e.Content, Mood: e.Mood}
}

func (d Draft) input() client.EntryInput {
	return client.EntryInput{Date: d.Date, Title: d.Title, Content: d.Content, Mood: d.Mood}
}

// Editor walks an entry through New → Viewing(id) ⇄ Editing(id) → Deleted.
// It is not safe for concurrent use.
type Editor struct {
	store  EntryStore
	mode   Mode
	record *client.Entry // last fetched or saved
	draft  Draft
}

// NewEditor starts a blank entry for date.
func NewEditor(store EntryStore, date string) *Editor {
	return &Editor{store: store, mode: ModeNew, draft: Draft{Date: date}}
}

// OpenEditor loads entry id in viewing mode.
func OpenEditor(ctx context.Context, store EntryStore, id int64) (*Editor, error) {
	e, err := store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Editor{store: store, mode: ModeViewing, record: e, draft: draftOf(e)}, nil
}

func (ed *Editor) Mode() Mode            { return ed.mode }
func (ed *Editor) Record() *client.Entry { return ed.record }
func (ed *Editor) Draft() Draft          { return ed.draft }

// ID returns the entry id, or 0 for an unsaved entry.
func (ed *Editor) ID() int64 {
	if ed.record == nil {
		return 0
	}
	return ed.record.ID
}

// Edit switches Viewing to Editing.
func (ed *Editor) Edit() error {
	if ed.mode != ModeViewing {
		return fmt.Errorf("%w: edit from %s", ErrInvalidTransition, ed.mode)
	}
	ed.mode = ModeEditing
	ed.draft = draftOf(ed.record)
	return nil
}

// Update replaces the draft. Only New and Editing accept changes.
func (ed *Editor) Update(d Draft) error {
	if ed.mode != ModeNew && ed.mode != ModeEditing {
		return fmt.Errorf("%w: update in %s", ErrInvalidTransition, ed.mode)
	}
	ed.draft = d
	return nil
}

// Cancel discards unsaved edits by resetting the draft to the last
// fetched record and returns to Viewing.
func (ed *Editor) Cancel() error {
	if ed.mode != ModeEditing {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, ed.mode)
	}
	ed.draft = draftOf(ed.record)
	ed.mode = ModeViewing
	return nil
}

// Submit creates the new entry and moves to Viewing(newID). On failure the
// editor stays in New with the draft intact.
func (ed *Editor) Submit(ctx context.Context) error {
	if ed.mode != ModeNew {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, ed.mode)
	}
	e, err := ed.store.CreateEntry(ctx, ed.draft.input())
	if err != nil {
		return err
	}
	ed.record, ed.draft, ed.mode = e, draftOf(e), ModeViewing
	return nil
}

// Save replaces the entry with the draft and returns to Viewing. On
// failure the editor stays in Editing.
func (ed *Editor) Save(ctx context.Context) error {
	if ed.mode != ModeEditing {
		return fmt.Errorf("%w: save from %s", ErrInvalidTransition, ed.mode)
	}
	e, err := ed.store.UpdateEntry(ctx, ed.record.ID, ed.draft.input())
	if err != nil {
		return err
	}
	ed.record, ed.draft, ed.mode = e, draftOf(e), ModeViewing
	return nil
}

// Delete removes the entry. It applies to Viewing and Editing.
func (ed *Editor) Delete(ctx context.Context) error {
	if ed.mode != ModeViewing && ed.mode != ModeEditing {
		return fmt.Errorf("%w: delete from %s", ErrInvalidTransition, ed.mode)
	}
	if err := ed.store.DeleteEntry(ctx, ed.record.ID); err != nil {
		return err
	}
	ed.mode = ModeDeleted
	return nil
}
