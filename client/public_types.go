package client

import "github.com/bradenpeterson/JournalApp/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	Entry     = types.Entry
	Tag       = types.Tag
	Mood      = types.Mood
	MoodValue = types.MoodValue
	Stats     = types.Stats

	// Requests
	EntryFilter = types.EntryFilter
	EntryInput  = types.EntryInput
	EntryPatch  = types.EntryPatch
	MoodInput   = types.MoodInput
	Credentials = types.Credentials
	SignUpInput = types.SignUpInput

	// Responses
	EntryPage = types.Page[types.Entry]
	TagPage   = types.Page[types.Tag]
)

const (
	MoodVerySad   = types.MoodVerySad
	MoodSad       = types.MoodSad
	MoodNeutral   = types.MoodNeutral
	MoodHappy     = types.MoodHappy
	MoodVeryHappy = types.MoodVeryHappy
)

// MoodScale lists the valid moods in ascending order.
var MoodScale = types.MoodScale
