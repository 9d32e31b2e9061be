package fakeapi

import (
	"fmt"
	"time"

	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// Stats is the body of GET /api/entries/stats/.
type Stats struct {
	DayStreak    int `json:"day_streak"`
	WeekStreak   int `json:"week_streak"`
	TotalEntries int `json:"total_entries"`
	TotalWords   int `json:"total_words"`
}

// stats computes the counters for userID. A streak may end today or
// yesterday (this week or last week) without being broken.
func (s *Store) stats(userID int64) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	days := map[string]bool{}
	weeks := map[string]bool{}
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		st.TotalEntries++
		st.TotalWords += wordCount(e.Content)
		days[e.Date] = true
		weeks[weekOf(dates.ParseLocal(e.Date))] = true
	}

	today := dates.ToISODate(s.now())
	day := today
	if !days[day] {
		day = dates.AddDays(today, -1)
	}
	for days[day] {
		st.DayStreak++
		day = dates.AddDays(day, -1)
	}

	wk := dates.ParseLocal(today)
	if !weeks[weekOf(wk)] {
		wk = wk.AddDate(0, 0, -7)
	}
	for weeks[weekOf(wk)] {
		st.WeekStreak++
		wk = wk.AddDate(0, 0, -7)
	}
	return st
}

// weekOf returns the ISO year-week key of t.
func weekOf(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}
