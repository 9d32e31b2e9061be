package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/bradenpeterson/JournalApp/client/internal/request"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
)

// ListTags fetches one page of tags. Zero page or pageSize leaves the
// server default in place.
func ListTags(ctx context.Context, rq Requester, page, pageSize int) (*types.Page[types.Tag], error) {
	params := map[string]any{}
	if page > 0 {
		params["page"] = page
	}
	if pageSize > 0 {
		params["page_size"] = pageSize
	}
	var p types.Page[types.Tag]
	if err := call(ctx, rq, "list tags", tagsPath, request.Options{Params: params}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func GetTag(ctx context.Context, rq Requester, id int64) (*types.Tag, error) {
	if err := types.ValidateID(id, "tagId"); err != nil {
		return nil, err
	}
	var t types.Tag
	if err := call(ctx, rq, "get tag", tagPath(id), request.Options{}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag creates a tag. Names are unique per user; a duplicate comes
// back as a validation error.
func CreateTag(ctx context.Context, rq Requester, name string) (*types.Tag, error) {
	if err := types.ValidateTagName(name); err != nil {
		return nil, err
	}
	var t types.Tag
	body := types.TagInput{Name: strings.TrimSpace(name)}
	if err := call(ctx, rq, "create tag", tagsPath, request.Options{Method: http.MethodPost, Body: body}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func UpdateTag(ctx context.Context, rq Requester, id int64, name string) (*types.Tag, error) {
	return writeTag(ctx, rq, "update tag", http.MethodPut, id, name)
}

func PatchTag(ctx context.Context, rq Requester, id int64, name string) (*types.Tag, error) {
	return writeTag(ctx, rq, "patch tag", http.MethodPatch, id, name)
}

func DeleteTag(ctx context.Context, rq Requester, id int64) error {
	if err := types.ValidateID(id, "tagId"); err != nil {
		return err
	}
	return call(ctx, rq, "delete tag", tagPath(id), request.Options{Method: http.MethodDelete}, nil)
}

func writeTag(ctx context.Context, rq Requester, op, method string, id int64, name string) (*types.Tag, error) {
	if err := types.ValidateID(id, "tagId"); err != nil {
		return nil, err
	}
	if err := types.ValidateTagName(name); err != nil {
		return nil, err
	}
	var t types.Tag
	body := types.TagInput{Name: strings.TrimSpace(name)}
	if err := call(ctx, rq, op, tagPath(id), request.Options{Method: method, Body: body}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
