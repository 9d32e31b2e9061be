package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type tagJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type entryJSON struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Image     *string   `json:"image"`
	Tags      []tagJSON `json:"tags"`
	WordCount int       `json:"word_count"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type moodJSON struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pageJSON struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func (s *Server) entryOut(e *entryRec) entryJSON {
	out := entryJSON{
		ID:        e.ID,
		Date:      e.Date,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      e.Mood,
		Tags:      []tagJSON{},
		WordCount: wordCount(e.Content),
		IsPrivate: e.IsPrivate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Image != "" {
		img := e.Image
		out.Image = &img
	}
	for _, t := range s.store.tagsOf(e) {
		out.Tags = append(out.Tags, tagJSON{ID: t.ID, Name: t.Name})
	}
	return out
}

func moodOut(m *moodRec) moodJSON {
	return moodJSON{ID: m.ID, Date: m.Date, Mood: m.Mood, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// paginate slices n items into pages of size and writes the envelope with
// absolute next/previous links.
func paginate[T any](w http.ResponseWriter, r *http.Request, items []T, size int) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = n
	}
	start := (page - 1) * size
	if start > 0 && start >= len(items) {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	results := items[start:end]
	if results == nil {
		results = []T{}
	}
	out := pageJSON{Count: len(items), Results: results}
	if end < len(items) {
		out.Next = pageLink(r, page+1)
	}
	if page > 1 {
		out.Previous = pageLink(r, page-1)
	}
	writeJSON(w, http.StatusOK, out)
}

func pageLink(r *http.Request, page int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	link := u.String()
	return &link
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func pageSize(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	switch {
	case err != nil || n <= 0:
		return def
	case n > maxPageSize:
		return maxPageSize
	}
	return n
}

// ------------------------- entries -------------------------

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request, userID int64) {
	q := r.URL.Query()
	query := EntryQuery{
		Search:    q.Get("search"),
		Date:      q.Get("date"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Mood:      q.Get("mood"),
		MonthDay:  q.Get("month_day"),
	}
	if raw := q.Get("tags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				writeValidation(w, fieldError("tags", "Enter a whole number."))
				return
			}
			query.TagIDs = append(query.TagIDs, id)
		}
	}

	recs := s.store.listEntries(userID, query)
	out := make([]entryJSON, 0, len(recs))
	for _, e := range recs {
		out = append(out, s.entryOut(e))
	}
	paginate(w, r, out, pageSize(r, s.pageSize))
}

// entryBody is the JSON write shape. Pointers distinguish absent fields.
type entryBody struct {
	Date      *string  `json:"date"`
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Mood      *string  `json:"mood"`
	IsPrivate *bool    `json:"is_private"`
	Tags      *[]int64 `json:"tags"`
}

func (b entryBody) fields() entryFields {
	f := entryFields{Date: b.Date, Title: b.Title, Content: b.Content, Mood: b.Mood, IsPrivate: b.IsPrivate}
	if b.Tags != nil {
		f.SetTags = true
		f.TagIDs = *b.Tags
	}
	return f
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("JSON parse error - %v", err))
		return false
	}
	return true
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request, userID int64) {
	var b entryBody
	if !decodeBody(w, r, &b) {
		return
	}
	e, err := s.store.createEntry(userID, b.fields())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.entryOut(e))
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request, userID int64) {
	e, err := s.store.getEntry(userID, pathID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.entryOut(e))
}

func (s *Server) putEntry(w http.ResponseWriter, r *http.Request, userID int64) {
	var b entryBody
	if !decodeBody(w, r, &b) {
		return
	}
	if b.Date == nil {
		writeValidation(w, fieldError("date", "This field is required."))
		return
	}
	// PUT replaces every writable scalar; absent ones reset to empty.
	empty := ""
	if b.Title == nil {
		b.Title = &empty
	}
	if b.Content == nil {
		b.Content = &empty
	}
	if b.Mood == nil {
		b.Mood = &empty
	}
	e, err := s.store.updateEntry(userID, pathID(r), b.fields())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.entryOut(e))
}

func (s *Server) patchEntry(w http.ResponseWriter, r *http.Request, userID int64) {
	var f entryFields
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		img, err := s.receiveImage(r)
		if err != nil {
			writeValidation(w, fieldError("image", err.Error()))
			return
		}
		f.Image = &img
	} else {
		var b entryBody
		if !decodeBody(w, r, &b) {
			return
		}
		f = b.fields()
	}
	e, err := s.store.updateEntry(userID, pathID(r), f)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.entryOut(e))
}

// receiveImage reads the "image" part and returns the URL it would be
// served from. The bytes are discarded.
func (s *Server) receiveImage(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return "", errors.New("The submitted data was not a file.")
	}
	_, hdr, err := r.FormFile("image")
	if err != nil {
		return "", errors.New("No file was submitted.")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: path.Join("/media/entry_images", path.Base(hdr.Filename))}
	return u.String(), nil
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.store.deleteEntry(userID, pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	noContent(w)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request, userID int64) {
	writeJSON(w, http.StatusOK, s.store.stats(userID))
}

// ------------------------- tags -------------------------

func (s *Server) listTags(w http.ResponseWriter, r *http.Request, userID int64) {
	recs := s.store.listTags(userID)
	out := make([]tagJSON, 0, len(recs))
	for _, t := range recs {
		out = append(out, tagJSON{ID: t.ID, Name: t.Name})
	}
	paginate(w, r, out, pageSize(r, s.pageSize))
}

type tagBody struct {
	Name string `json:"name"`
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request, userID int64) {
	var b tagBody
	if !decodeBody(w, r, &b) {
		return
	}
	t, err := s.store.saveTag(userID, 0, b.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tagJSON{ID: t.ID, Name: t.Name})
}

func (s *Server) getTag(w http.ResponseWriter, r *http.Request, userID int64) {
	t, err := s.store.getTag(userID, pathID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagJSON{ID: t.ID, Name: t.Name})
}

func (s *Server) renameTag(w http.ResponseWriter, r *http.Request, userID int64) {
	var b tagBody
	if !decodeBody(w, r, &b) {
		return
	}
	t, err := s.store.saveTag(userID, pathID(r), b.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagJSON{ID: t.ID, Name: t.Name})
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.store.deleteTag(userID, pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	noContent(w)
}

// ------------------------- moods -------------------------

type moodBody struct {
	Date *string `json:"date"`
	Mood *string `json:"mood"`
}

func (s *Server) listMoods(w http.ResponseWriter, r *http.Request, userID int64) {
	recs := s.store.listMoods(userID, r.URL.Query().Get("date"))
	out := make([]moodJSON, 0, len(recs))
	for i := range recs {
		out = append(out, moodOut(&recs[i]))
	}
	paginate(w, r, out, pageSize(r, s.pageSize))
}

func (s *Server) createMood(w http.ResponseWriter, r *http.Request, userID int64) {
	var b moodBody
	if !decodeBody(w, r, &b) {
		return
	}
	m, err := s.store.saveMood(userID, 0, b.Date, b.Mood)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, moodOut(m))
}

func (s *Server) getMood(w http.ResponseWriter, r *http.Request, userID int64) {
	m, err := s.store.getMood(userID, pathID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moodOut(m))
}

func (s *Server) putMood(w http.ResponseWriter, r *http.Request, userID int64) {
	var b moodBody
	if !decodeBody(w, r, &b) {
		return
	}
	if b.Date == nil || b.Mood == nil {
		errs := ValidationError{}
		if b.Date == nil {
			errs["date"] = []string{"This field is required."}
		}
		if b.Mood == nil {
			errs["mood"] = []string{"This field is required."}
		}
		writeValidation(w, errs)
		return
	}
	s.saveMoodResponse(w, userID, pathID(r), b)
}

func (s *Server) patchMood(w http.ResponseWriter, r *http.Request, userID int64) {
	var b moodBody
	if !decodeBody(w, r, &b) {
		return
	}
	s.saveMoodResponse(w, userID, pathID(r), b)
}

func (s *Server) saveMoodResponse(w http.ResponseWriter, userID, id int64, b moodBody) {
	m, err := s.store.saveMood(userID, id, b.Date, b.Mood)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moodOut(m))
}

func (s *Server) deleteMood(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.store.deleteMood(userID, pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	noContent(w)
}
