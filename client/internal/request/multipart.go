package request

import (
	"bytes"
	"io"
	"mime/multipart"
	"sort"
)

// RawBody is sent verbatim with its own content type. It is how form posts
// and file uploads bypass JSON encoding.
type RawBody struct {
	ContentType string
	Data        []byte
}

// File is one file part of a multipart body.
type File struct {
	Field    string
	Filename string
	Content  io.Reader
}

// NewMultipart encodes fields (in key order) followed by files as
// multipart/form-data.
func NewMultipart(fields map[string]string, files ...File) (*RawBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &RawBody{ContentType: w.FormDataContentType(), Data: buf.Bytes()}, nil
}
