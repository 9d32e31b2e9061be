package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client/internal/request"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
)

// ListMoods lists mood records, restricted to date when it is non-empty.
func ListMoods(ctx context.Context, rq Requester, date string) ([]types.Mood, error) {
	params := map[string]any{}
	if date != "" {
		if err := types.ValidateDate(date, "date"); err != nil {
			return nil, err
		}
		params["date"] = date
	}
	var p types.Page[types.Mood]
	if err := call(ctx, rq, "list moods", moodsPath, request.Options{Params: params}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetMoodByDate returns the mood record for date or nil.
func GetMoodByDate(ctx context.Context, rq Requester, date string) (*types.Mood, error) {
	moods, err := ListMoods(ctx, rq, date)
	if err != nil {
		return nil, err
	}
	if len(moods) == 0 {
		return nil, nil
	}
	if len(moods) > 1 {
		log.Warn().Str("date", date).Int("count", len(moods)).Int64("using_id", moods[0].ID).Msg("multiple moods for date")
	}
	return &moods[0], nil
}

func CreateMood(ctx context.Context, rq Requester, in types.MoodInput) (*types.Mood, error) {
	if err := types.ValidateDate(in.Date, "date"); err != nil {
		return nil, err
	}
	if err := types.ValidateMood(in.Mood); err != nil {
		return nil, err
	}
	var m types.Mood
	if err := call(ctx, rq, "create mood", moodsPath, request.Options{Method: http.MethodPost, Body: in}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func UpdateMood(ctx context.Context, rq Requester, id int64, in types.MoodInput) (*types.Mood, error) {
	if err := types.ValidateID(id, "moodId"); err != nil {
		return nil, err
	}
	if err := types.ValidateDate(in.Date, "date"); err != nil {
		return nil, err
	}
	if err := types.ValidateMood(in.Mood); err != nil {
		return nil, err
	}
	var m types.Mood
	if err := call(ctx, rq, "update mood", moodPath(id), request.Options{Method: http.MethodPut, Body: in}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// PatchMood changes only the mood value of an existing record.
func PatchMood(ctx context.Context, rq Requester, id int64, value types.MoodValue) (*types.Mood, error) {
	if err := types.ValidateID(id, "moodId"); err != nil {
		return nil, err
	}
	if err := types.ValidateMood(value); err != nil {
		return nil, err
	}
	var m types.Mood
	body := types.MoodPatch{Mood: value}
	if err := call(ctx, rq, "patch mood", moodPath(id), request.Options{Method: http.MethodPatch, Body: body}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func DeleteMood(ctx context.Context, rq Requester, id int64) error {
	if err := types.ValidateID(id, "moodId"); err != nil {
		return err
	}
	return call(ctx, rq, "delete mood", moodPath(id), request.Options{Method: http.MethodDelete}, nil)
}
