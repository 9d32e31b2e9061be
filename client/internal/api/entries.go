package api

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client/internal/request"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
)

// ListEntries fetches one page of entries matching filter.
func ListEntries(ctx context.Context, rq Requester, filter types.EntryFilter) (*types.Page[types.Entry], error) {
	if filter.MonthDay != "" {
		if err := types.ValidateMonthDay(filter.MonthDay); err != nil {
			return nil, err
		}
	}
	var page types.Page[types.Entry]
	if err := call(ctx, rq, "list entries", entriesPath, request.Options{Params: filter.Params()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAllEntries follows next links until the listing is exhausted.
func ListAllEntries(ctx context.Context, rq Requester, filter types.EntryFilter) ([]types.Entry, error) {
	page, err := ListEntries(ctx, rq, filter)
	if err != nil {
		return nil, err
	}
	all := append([]types.Entry(nil), page.Results...)
	for page.HasMore() {
		next := page.Next
		page = &types.Page[types.Entry]{}
		if err := call(ctx, rq, "list entries", next, request.Options{}, page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
	}
	return all, nil
}

// GetEntry fetches one entry by id.
func GetEntry(ctx context.Context, rq Requester, id int64) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	var e types.Entry
	if err := call(ctx, rq, "get entry", entryPath(id), request.Options{}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEntry posts a new entry.
func CreateEntry(ctx context.Context, rq Requester, in types.EntryInput) (*types.Entry, error) {
	if err := validateEntryInput(in); err != nil {
		return nil, err
	}
	var e types.Entry
	if err := call(ctx, rq, "create entry", entriesPath, request.Options{Method: http.MethodPost, Body: in}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry replaces an entry (PUT).
func UpdateEntry(ctx context.Context, rq Requester, id int64, in types.EntryInput) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	if err := validateEntryInput(in); err != nil {
		return nil, err
	}
	var e types.Entry
	if err := call(ctx, rq, "update entry", entryPath(id), request.Options{Method: http.MethodPut, Body: in}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// PatchEntry applies a partial update.
func PatchEntry(ctx context.Context, rq Requester, id int64, patch types.EntryPatch) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	if patch.Date != nil {
		if err := types.ValidateDate(*patch.Date, "date"); err != nil {
			return nil, err
		}
	}
	if patch.Mood != nil && *patch.Mood != "" {
		if err := types.ValidateMood(*patch.Mood); err != nil {
			return nil, err
		}
	}
	var e types.Entry
	if err := call(ctx, rq, "patch entry", entryPath(id), request.Options{Method: http.MethodPatch, Body: patch}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetEntryTags replaces the entry's tag set with tagIDs. An empty slice
// clears all tags.
func SetEntryTags(ctx context.Context, rq Requester, id int64, tagIDs []int64) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	if tagIDs == nil {
		tagIDs = []int64{}
	}
	body := map[string][]int64{"tags": tagIDs}
	var e types.Entry
	if err := call(ctx, rq, "set entry tags", entryPath(id), request.Options{Method: http.MethodPatch, Body: body}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UploadEntryImage sends an image as a multipart PATCH on the entry.
func UploadEntryImage(ctx context.Context, rq Requester, id int64, filename string, content io.Reader) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	body, err := request.NewMultipart(nil, request.File{Field: "image", Filename: filename, Content: content})
	if err != nil {
		return nil, err
	}
	var e types.Entry
	if err := call(ctx, rq, "upload entry image", entryPath(id), request.Options{Method: http.MethodPatch, Body: body}, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntry removes an entry.
func DeleteEntry(ctx context.Context, rq Requester, id int64) error {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return err
	}
	return call(ctx, rq, "delete entry", entryPath(id), request.Options{Method: http.MethodDelete}, nil)
}

// GetEntriesByDate lists every entry the backend has for date.
func GetEntriesByDate(ctx context.Context, rq Requester, date string) ([]types.Entry, error) {
	if err := types.ValidateDate(date, "date"); err != nil {
		return nil, err
	}
	page, err := ListEntries(ctx, rq, types.EntryFilter{Date: date})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetEntryByDate returns the entry for date or nil. Only the first result
// is used; extra entries for the same day are logged and ignored.
func GetEntryByDate(ctx context.Context, rq Requester, date string) (*types.Entry, error) {
	entries, err := GetEntriesByDate(ctx, rq, date)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	if len(entries) > 1 {
		log.Warn().Str("date", date).Int("count", len(entries)).Int64("using_id", entries[0].ID).Msg("multiple entries for date")
	}
	return &entries[0], nil
}

// GetEntriesByMonthDay lists entries on monthDay ("MM-DD") across all years.
func GetEntriesByMonthDay(ctx context.Context, rq Requester, monthDay string) ([]types.Entry, error) {
	page, err := ListEntries(ctx, rq, types.EntryFilter{MonthDay: monthDay})
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetStats fetches the streak and total counters.
func GetStats(ctx context.Context, rq Requester) (*types.Stats, error) {
	var s types.Stats
	if err := call(ctx, rq, "get stats", entryStatsPath, request.Options{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validateEntryInput(in types.EntryInput) error {
	if err := types.ValidateDate(in.Date, "date"); err != nil {
		return err
	}
	if in.Mood != "" {
		return types.ValidateMood(in.Mood)
	}
	return nil
}
