package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bradenpeterson/JournalApp/client"
)

// fakeSource is an in-memory Source and EntryStore.
type fakeSource struct {
	mu       sync.Mutex
	entries  map[int64]*client.Entry
	moods    map[string]*client.Mood
	tags     []client.Tag
	nextID   int64
	statsErr error
	gates    map[string]chan struct{} // date → released when closed
	moodGate map[string]chan struct{}
	calls    map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		entries:  map[int64]*client.Entry{},
		moods:    map[string]*client.Mood{},
		gates:    map[string]chan struct{}{},
		moodGate: map[string]chan struct{}{},
		calls:    map[string]int{},
		nextID:   1,
	}
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeSource) addEntry(e client.Entry) *client.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	f.entries[e.ID] = &e
	return &e
}

func (f *fakeSource) EntryForDate(ctx context.Context, date string) (*client.Entry, error) {
	f.hit("entry")
	f.mu.Lock()
	gate := f.gates[date]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.entries[id]; ok && e.Date == date {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) MoodForDate(ctx context.Context, date string) (*client.MoodView, error) {
	f.hit("mood")
	f.mu.Lock()
	gate := f.moodGate[date]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.moods[date]; ok {
		return &client.MoodView{Record: m, Value: m.Mood}, nil
	}
	return &client.MoodView{}, nil
}

func (f *fakeSource) SetMood(ctx context.Context, date string, value client.MoodValue, current *client.Mood) (*client.Mood, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if current != nil {
		current.Mood = value
		f.moods[date] = current
		return current, nil
	}
	m := &client.Mood{ID: int64(len(f.moods) + 1), Date: date, Mood: value}
	f.moods[date] = m
	return m, nil
}

func (f *fakeSource) ClearMood(ctx context.Context, record *client.Mood) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.moods, record.Date)
	return nil
}

func (f *fakeSource) OnThisDay(ctx context.Context, date string) ([]client.Entry, error) {
	f.hit("on_this_day")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []client.Entry
	for _, e := range f.entries {
		if e.Date != date && e.Date[4:] == date[4:] {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeSource) Stats(ctx context.Context) (*client.Stats, error) {
	f.hit("stats")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &client.Stats{TotalEntries: len(f.entries)}, nil
}

func (f *fakeSource) SuggestTags(ctx context.Context, filter string) ([]client.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []client.Tag
	for _, t := range f.tags {
		if filter != "" && strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeSource) AttachTag(ctx context.Context, date string, tagID int64) (*client.Entry, error) {
	e, _ := f.EntryForDate(ctx, date)
	if e == nil {
		return nil, client.ErrNoEntryForDate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.entries[e.ID]
	if !stored.HasTag(tagID) {
		stored.Tags = append(stored.Tags, client.Tag{ID: tagID})
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeSource) CreateAndAttachTag(ctx context.Context, date, name string) (*client.Tag, *client.Entry, error) {
	f.mu.Lock()
	tag := client.Tag{ID: int64(100 + len(f.tags)), Name: name}
	f.tags = append(f.tags, tag)
	f.mu.Unlock()
	e, err := f.AttachTag(ctx, date, tag.ID)
	if err != nil {
		return &tag, nil, &client.TagAttachError{Tag: &tag, Err: err}
	}
	return &tag, e, nil
}

func (f *fakeSource) GetEntry(ctx context.Context, id int64) (*client.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeSource) CreateEntry(ctx context.Context, in client.EntryInput) (*client.Entry, error) {
	if in.Date == "" {
		return nil, errors.New("date required")
	}
	return f.addEntry(client.Entry{Date: in.Date, Title: in.Title, Content: in.Content, Mood: in.Mood}), nil
}

func (f *fakeSource) UpdateEntry(ctx context.Context, id int64, in client.EntryInput) (*client.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, errors.New("not found")
	}
	e.Date, e.Title, e.Content, e.Mood = in.Date, in.Title, in.Content, in.Mood
	cp := *e
	return &cp, nil
}

func (f *fakeSource) DeleteEntry(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}
