package client

import (
	"errors"
	"fmt"

	clienterrors "github.com/bradenpeterson/JournalApp/client/internal/errors"
)

// Error is the tagged failure returned by every request.
type Error = clienterrors.Error

// ErrorKind classifies an Error.
type ErrorKind = clienterrors.Kind

const (
	KindNetwork    = clienterrors.Network
	KindHTTP       = clienterrors.HTTP
	KindValidation = clienterrors.Validation
)

// ErrNoEntryForDate is returned by operations that need an existing entry
// for the date, such as attaching a tag. Callers typically create the entry
// first.
var ErrNoEntryForDate = errors.New("no entry for date")

// TagAttachError reports that a tag was created but attaching it to the
// day's entry failed. The tag exists on the server.
type TagAttachError struct {
	Tag *Tag
	Err error
}

func (e *TagAttachError) Error() string {
	return fmt.Sprintf("tag %q created but not attached: %v", e.Tag.Name, e.Err)
}

func (e *TagAttachError) Unwrap() error { return e.Err }

// AsError extracts the request failure from err's chain.
func AsError(err error) (*Error, bool) { return clienterrors.As(err) }

// IsNotFound reports a 404 answer.
func IsNotFound(err error) bool { return clienterrors.IsNotFound(err) }

// IsUnauthenticated reports a 401 or 403 answer.
func IsUnauthenticated(err error) bool { return clienterrors.IsUnauthenticated(err) }

// IsNetwork reports a failure before any HTTP response arrived.
func IsNetwork(err error) bool { return clienterrors.IsNetwork(err) }

// UserMessage turns err into one line suitable for display, falling back
// to fallback when the server gave nothing better.
func UserMessage(err error, fallback string) string {
	return clienterrors.UserMessage(err, fallback)
}
