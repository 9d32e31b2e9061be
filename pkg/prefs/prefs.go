// Package prefs persists the journal's UI preferences on disk. The only
// preference today is whether the sidebar is open.
package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"
)

// DefaultDir is where preferences live unless JOURNAL_PREFS_DIR says
// otherwise.
const DefaultDir = "~/.journalapp"

const sidebarKey = "sidebarOpen"

// Store is a diskv-backed preference store. Values are JSON encoded.
type Store struct {
	d    *diskv.Diskv
	base string
}

// Open returns a store rooted at dir. An empty dir means JOURNAL_PREFS_DIR,
// then DefaultDir. A leading ~ is expanded.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv("JOURNAL_PREFS_DIR")
	}
	if dir == "" {
		dir = DefaultDir
	}
	base, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     base,
			CacheSizeMax: 64 * 1024,
		}),
		base: base,
	}, nil
}

// Dir returns the expanded directory the store writes to.
func (s *Store) Dir() string { return s.base }

// SidebarOpen reports the stored flag. It defaults to true when nothing
// has been stored or the stored value is unreadable.
func (s *Store) SidebarOpen() bool {
	var open bool
	found, err := s.get(sidebarKey, &open)
	if err != nil {
		log.Warn().Err(err).Str("key", sidebarKey).Msg("prefs: ignoring unreadable value")
		return true
	}
	if !found {
		return true
	}
	return open
}

// SetSidebarOpen stores the flag.
func (s *Store) SetSidebarOpen(open bool) error {
	return s.put(sidebarKey, open)
}

// ToggleSidebar flips the flag and returns the new value.
func (s *Store) ToggleSidebar() (bool, error) {
	next := !s.SidebarOpen()
	if err := s.SetSidebarOpen(next); err != nil {
		return !next, err
	}
	return next, nil
}

func (s *Store) get(key string, v any) (bool, error) {
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, v)
}

func (s *Store) put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, b)
}
