package api

import (
	"context"
	"fmt"

	clienterrors "github.com/bradenpeterson/JournalApp/client/internal/errors"
	"github.com/bradenpeterson/JournalApp/client/internal/request"
)

// REST endpoints, trailing slashes included as the backend requires them.
const (
	entriesPath    = "/api/entries/"
	entryStatsPath = "/api/entries/stats/"
	tagsPath       = "/api/tags/"
	moodsPath      = "/api/moods/"
	csrfPath       = "/api/csrf/"
	signInPath     = "/api/registration/sign_in/"
	signUpPath     = "/api/registration/sign_up/"
	logoutPath     = "/api-auth/logout/"
)

// Requester is the part of the request layer the resource functions use.
// *request.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, path string, opts request.Options) (*request.Response, error)
}

func entryPath(id int64) string { return fmt.Sprintf("%s%d/", entriesPath, id) }
func tagPath(id int64) string   { return fmt.Sprintf("%s%d/", tagsPath, id) }
func moodPath(id int64) string  { return fmt.Sprintf("%s%d/", moodsPath, id) }

// call performs the request and decodes a JSON answer into out (if non-nil).
func call(ctx context.Context, rq Requester, op, path string, opts request.Options, out any) error {
	if err := ctx.Err(); err != nil {
		return clienterrors.NewNetworkError(op, err)
	}
	resp, err := rq.Do(ctx, path, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
