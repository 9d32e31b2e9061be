package fakeapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// ErrNotFound is returned for ids the user does not own.
var ErrNotFound = errors.New("not found")

// ValidationError maps field names to messages, as a 400 body.
type ValidationError map[string][]string

func (v ValidationError) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(v[k], " ")))
	}
	return strings.Join(parts, "; ")
}

func fieldError(field, msg string) ValidationError {
	return ValidationError{field: {msg}}
}

// User is an account on the fake backend.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type entryRec struct {
	ID        int64
	UserID    int64
	Date      string
	Title     string
	Content   string
	Mood      string
	Image     string
	TagIDs    []int64
	IsPrivate bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *entryRec) clone() *entryRec {
	cp := *e
	cp.TagIDs = append([]int64{}, e.TagIDs...)
	return &cp
}

type tagRec struct {
	ID     int64
	UserID int64
	Name   string
}

type moodRec struct {
	ID        int64
	UserID    int64
	Date      string
	Mood      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store keeps every record in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	now    func() time.Time
	nextID int64

	users   map[int64]*User
	entries map[int64]*entryRec
	tags    map[int64]*tagRec
	moods   map[int64]*moodRec
}

// NewStore returns an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		nextID:  1,
		users:   map[int64]*User{},
		entries: map[int64]*entryRec{},
		tags:    map[int64]*tagRec{},
		moods:   map[int64]*moodRec{},
	}
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// AddUser registers an account. Emails are unique, case-insensitively.
func (s *Store) AddUser(u User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" || u.Password == "" {
		return nil, ValidationError{"email": {"This field is required."}, "password": {"This field is required."}}
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, fieldError("email", "A user with that email already exists.")
		}
	}
	u.ID = s.id()
	cp := u
	s.users[u.ID] = &cp
	return &u, nil
}

// Authenticate returns the user matching the credentials.
func (s *Store) Authenticate(email, password string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			cp := *u
			return &cp, true
		}
	}
	return nil, false
}

func (s *Store) userExists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok
}

// ------------------------- entries -------------------------

// EntryQuery mirrors the list filters the entries endpoint accepts.
type EntryQuery struct {
	Search    string
	Date      string
	StartDate string
	EndDate   string
	TagIDs    []int64
	Mood      string
	MonthDay  string
}

func (q EntryQuery) match(e *entryRec) bool {
	switch {
	case q.Date != "" && e.Date != q.Date:
		return false
	case q.StartDate != "" && e.Date < q.StartDate:
		return false
	case q.EndDate != "" && e.Date > q.EndDate:
		return false
	case q.Mood != "" && e.Mood != q.Mood:
		return false
	case q.MonthDay != "" && dates.MonthDay(e.Date) != q.MonthDay:
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(e.Title), needle) && !strings.Contains(strings.ToLower(e.Content), needle) {
			return false
		}
	}
	for _, id := range q.TagIDs {
		if !containsID(e.TagIDs, id) {
			return false
		}
	}
	return true
}

// entryFields is a partial entry write. Nil pointers are left unchanged.
type entryFields struct {
	Date      *string
	Title     *string
	Content   *string
	Mood      *string
	IsPrivate *bool
	TagIDs    []int64
	SetTags   bool
	Image     *string
}

func (s *Store) listEntries(userID int64, q EntryQuery) []*entryRec {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entryRec
	for _, e := range s.entries {
		if e.UserID == userID && q.match(e) {
			out = append(out, e.clone())
		}
	}
	// newest day first, then creation order
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) getEntry(userID, id int64) (*entryRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return e.clone(), nil
}

func (s *Store) createEntry(userID int64, f entryFields) (*entryRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Date == nil {
		return nil, fieldError("date", "This field is required.")
	}
	now := s.now()
	e := &entryRec{UserID: userID, TagIDs: []int64{}, CreatedAt: now, UpdatedAt: now}
	if err := s.applyEntry(e, f); err != nil {
		return nil, err
	}
	e.ID = s.id()
	s.entries[e.ID] = e
	return e.clone(), nil
}

func (s *Store) updateEntry(userID, id int64, f entryFields) (*entryRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	next := e.clone()
	if err := s.applyEntry(next, f); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	s.entries[id] = next
	return next.clone(), nil
}

// applyEntry validates f and copies it onto e. Callers hold s.mu.
func (s *Store) applyEntry(e *entryRec, f entryFields) error {
	errs := ValidationError{}
	if f.Date != nil {
		if !dates.Valid(*f.Date) {
			errs["date"] = []string{"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}
		} else {
			e.Date = *f.Date
		}
	}
	if f.Mood != nil {
		if *f.Mood != "" && !validMood(*f.Mood) {
			errs["mood"] = []string{fmt.Sprintf("%q is not a valid choice.", *f.Mood)}
		} else {
			e.Mood = *f.Mood
		}
	}
	if f.SetTags {
		for _, id := range f.TagIDs {
			t, ok := s.tags[id]
			if !ok || t.UserID != e.UserID {
				errs["tags"] = append(errs["tags"], fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	if f.Title != nil {
		e.Title = *f.Title
	}
	if f.Content != nil {
		e.Content = *f.Content
	}
	if f.IsPrivate != nil {
		e.IsPrivate = *f.IsPrivate
	}
	if f.Image != nil {
		e.Image = *f.Image
	}
	if f.SetTags {
		e.TagIDs = dedupe(f.TagIDs)
	}
	return nil
}

func (s *Store) deleteEntry(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) tagsOf(e *entryRec) []tagRec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tagRec, 0, len(e.TagIDs))
	for _, id := range e.TagIDs {
		if t, ok := s.tags[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// ------------------------- tags -------------------------

func (s *Store) listTags(userID int64) []tagRec {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tagRec
	for _, t := range s.tags {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) getTag(userID, id int64) (*tagRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// saveTag creates (id == 0) or renames a tag.
func (s *Store) saveTag(userID, id int64, name string) (*tagRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, fieldError("name", "This field may not be blank.")
	case len(name) > 50:
		return nil, fieldError("name", "Ensure this field has no more than 50 characters.")
	}
	for _, t := range s.tags {
		if t.UserID == userID && t.ID != id && t.Name == name {
			return nil, fieldError("name", "tag with this name already exists.")
		}
	}
	if id == 0 {
		t := &tagRec{ID: s.id(), UserID: userID, Name: name}
		s.tags[t.ID] = t
		cp := *t
		return &cp, nil
	}
	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	t.Name = name
	cp := *t
	return &cp, nil
}

func (s *Store) deleteTag(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(s.tags, id)
	for _, e := range s.entries {
		if e.UserID == userID && containsID(e.TagIDs, id) {
			e.TagIDs = removeID(e.TagIDs, id)
		}
	}
	return nil
}

// ------------------------- moods -------------------------

func (s *Store) listMoods(userID int64, date string) []moodRec {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []moodRec
	for _, m := range s.moods {
		if m.UserID == userID && (date == "" || m.Date == date) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *Store) getMood(userID, id int64) (*moodRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.moods[id]
	if !ok || m.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// saveMood creates (id == 0) or updates a mood. Nil fields are unchanged on
// update and required on create.
func (s *Store) saveMood(userID, id int64, date, mood *string) (*moodRec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var m moodRec
	if id != 0 {
		cur, ok := s.moods[id]
		if !ok || cur.UserID != userID {
			return nil, ErrNotFound
		}
		m = *cur
	} else {
		errs := ValidationError{}
		if date == nil {
			errs["date"] = []string{"This field is required."}
		}
		if mood == nil {
			errs["mood"] = []string{"This field is required."}
		}
		if len(errs) > 0 {
			return nil, errs
		}
		m = moodRec{UserID: userID, CreatedAt: s.now()}
	}

	errs := ValidationError{}
	if date != nil {
		if !dates.Valid(*date) {
			errs["date"] = []string{"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}
		}
		m.Date = *date
	}
	if mood != nil {
		if !validMood(*mood) {
			errs["mood"] = []string{fmt.Sprintf("%q is not a valid choice.", *mood)}
		}
		m.Mood = *mood
	}
	if len(errs) > 0 {
		return nil, errs
	}
	for _, other := range s.moods {
		if other.UserID == userID && other.ID != id && other.Date == m.Date {
			return nil, fieldError("non_field_errors", "The fields user, date must make a unique set.")
		}
	}

	m.UpdatedAt = s.now()
	if id == 0 {
		m.ID = s.id()
	}
	stored := m
	s.moods[m.ID] = &stored
	return &m, nil
}

func (s *Store) deleteMood(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.moods[id]
	if !ok || m.UserID != userID {
		return ErrNotFound
	}
	delete(s.moods, id)
	return nil
}

// ------------------------- helpers -------------------------

func validMood(m string) bool {
	return len(m) == 1 && m[0] >= '1' && m[0] <= '5'
}

func wordCount(s string) int { return len(strings.Fields(s)) }

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}
