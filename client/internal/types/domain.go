package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Tag is a user-owned label attached to entries.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Entry is one journal record for a calendar day.
type Entry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      MoodValue `json:"mood,omitempty"` // legacy inline mood
	Image     *string   `json:"image,omitempty"`
	Tags      []Tag     `json:"tags"`
	WordCount int       `json:"word_count"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagIDs returns the ids of the entry's tags in their listed order.
func (e *Entry) TagIDs() []int64 {
	ids := make([]int64, 0, len(e.Tags))
	for _, t := range e.Tags {
		if t.ID != 0 {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// HasTag reports whether the entry already carries tagID.
func (e *Entry) HasTag(tagID int64) bool {
	for _, t := range e.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// Mood is the dedicated per-day mood record.
type Mood struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Mood      MoodValue `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats is the per-user summary served by /api/entries/stats/.
type Stats struct {
	DayStreak    int `json:"day_streak"`
	WeekStreak   int `json:"week_streak"`
	TotalEntries int `json:"total_entries"`
	TotalWords   int `json:"total_words"`
}

// MoodValue is a mood on the 1..5 scale as sent on the wire ("1".."5").
// The empty value means no mood.
type MoodValue string

const (
	MoodVerySad   MoodValue = "1"
	MoodSad       MoodValue = "2"
	MoodNeutral   MoodValue = "3"
	MoodHappy     MoodValue = "4"
	MoodVeryHappy MoodValue = "5"
)

// MoodScale lists the valid moods in ascending order.
var MoodScale = []MoodValue{MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy}

var moodLabels = map[MoodValue]string{
	MoodVerySad:   "Very sad",
	MoodSad:       "Sad",
	MoodNeutral:   "Neutral",
	MoodHappy:     "Happy",
	MoodVeryHappy: "Very happy",
}

// Valid reports whether m is on the 1..5 scale.
func (m MoodValue) Valid() bool {
	_, ok := moodLabels[m]
	return ok
}

// Label returns the display label, or the raw value for legacy free text.
func (m MoodValue) Label() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return string(m)
}
