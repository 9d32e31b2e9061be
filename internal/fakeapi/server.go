// Package fakeapi is an in-memory stand-in for the journal REST backend. It
// serves the same endpoints, cookies and error bodies the client expects,
// for tests and local development. It is not a reimplementation of the
// real service.
package fakeapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

// Cookie and header names shared with the client.
const (
	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
	CSRFHeader    = "X-CSRFToken"

	sessionUserKey  = "user_id"
	defaultPageSize = 10
	maxPageSize     = 100
)

// Options configures a Server.
type Options struct {
	// PageSize for entry and mood listings. Defaults to 10.
	PageSize int
	// SessionKey signs the session cookie. A random key is used when empty.
	SessionKey []byte
	// Now is the clock used for timestamps and streaks.
	Now func() time.Time
}

// Server is an http.Handler serving the fake backend.
type Server struct {
	store    *Store
	sessions *sessions.CookieStore
	router   *mux.Router
	pageSize int
}

// New builds a server with an empty store.
func New(opts Options) *Server {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if len(opts.SessionKey) == 0 {
		opts.SessionKey = []byte(uuid.NewString() + uuid.NewString())
	}

	cs := sessions.NewCookieStore(opts.SessionKey)
	cs.MaxAge(60 * 60 * 24 * 14)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true

	s := &Server{
		store:    NewStore(opts.Now),
		sessions: cs,
		pageSize: opts.PageSize,
	}
	s.router = s.routes()
	return s
}

// Store exposes the backing store, mainly for seeding users.
func (s *Server) Store() *Store { return s.store }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	root := mux.NewRouter()
	root.Use(recoverer, logRequests, csrfProtect)

	root.HandleFunc("/api/csrf/", s.handleCSRF).Methods("GET")
	root.HandleFunc("/api/registration/sign_in/", s.handleSignIn).Methods("POST")
	root.HandleFunc("/api/registration/sign_up/", s.handleSignUp).Methods("POST")
	root.HandleFunc("/api-auth/logout/", s.handleLogout).Methods("POST")

	root.HandleFunc("/api/entries/", s.authed(s.listEntries)).Methods("GET")
	root.HandleFunc("/api/entries/", s.authed(s.createEntry)).Methods("POST")
	root.HandleFunc("/api/entries/stats/", s.authed(s.getStats)).Methods("GET")
	root.HandleFunc("/api/entries/{id:[0-9]+}/", s.authed(s.getEntry)).Methods("GET")
	root.HandleFunc("/api/entries/{id:[0-9]+}/", s.authed(s.putEntry)).Methods("PUT")
	root.HandleFunc("/api/entries/{id:[0-9]+}/", s.authed(s.patchEntry)).Methods("PATCH")
	root.HandleFunc("/api/entries/{id:[0-9]+}/", s.authed(s.deleteEntry)).Methods("DELETE")

	root.HandleFunc("/api/tags/", s.authed(s.listTags)).Methods("GET")
	root.HandleFunc("/api/tags/", s.authed(s.createTag)).Methods("POST")
	root.HandleFunc("/api/tags/{id:[0-9]+}/", s.authed(s.getTag)).Methods("GET")
	root.HandleFunc("/api/tags/{id:[0-9]+}/", s.authed(s.renameTag)).Methods("PUT", "PATCH")
	root.HandleFunc("/api/tags/{id:[0-9]+}/", s.authed(s.deleteTag)).Methods("DELETE")

	root.HandleFunc("/api/moods/", s.authed(s.listMoods)).Methods("GET")
	root.HandleFunc("/api/moods/", s.authed(s.createMood)).Methods("POST")
	root.HandleFunc("/api/moods/{id:[0-9]+}/", s.authed(s.getMood)).Methods("GET")
	root.HandleFunc("/api/moods/{id:[0-9]+}/", s.authed(s.putMood)).Methods("PUT")
	root.HandleFunc("/api/moods/{id:[0-9]+}/", s.authed(s.patchMood)).Methods("PATCH")
	root.HandleFunc("/api/moods/{id:[0-9]+}/", s.authed(s.deleteMood)).Methods("DELETE")

	return root
}

// ------------------------- middleware -------------------------

type userHandler func(w http.ResponseWriter, r *http.Request, userID int64)

// authed rejects requests without a valid session the way the REST
// framework does for session auth: 403 with a detail message.
func (s *Server) authed(h userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.currentUser(r)
		if !ok {
			writeDetail(w, http.StatusForbidden, "Authentication credentials were not provided.")
			return
		}
		h(w, r, userID)
	}
}

func (s *Server) currentUser(r *http.Request) (int64, bool) {
	sess, err := s.sessions.Get(r, SessionCookie)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[sessionUserKey].(int64)
	if !ok || !s.store.userExists(id) {
		return 0, false
	}
	return id, true
}

// csrfProtect enforces the double-submit check on unsafe methods: the
// X-CSRFToken header must match the csrftoken cookie.
func csrfProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		c, err := r.Cookie(CSRFCookie)
		if err != nil || c.Value == "" {
			writeDetail(w, http.StatusForbidden, "CSRF Failed: CSRF cookie not set.")
			return
		}
		if r.Header.Get(CSRFHeader) != c.Value {
			writeDetail(w, http.StatusForbidden, "CSRF Failed: CSRF token missing or incorrect.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("fakeapi: handler panic")
				writeDetail(w, http.StatusInternalServerError, "A server error occurred.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Dur("elapsed", time.Since(start)).
			Msg("fakeapi request")
	})
}

// ------------------------- auth -------------------------

func (s *Server) handleCSRF(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(CSRFCookie); err == nil && c.Value != "" {
		token = c.Value
	} else {
		token = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CSRFCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 365,
			SameSite: http.SameSiteLaxMode,
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	email, password := r.FormValue("email"), r.FormValue("password")
	u, ok := s.store.Authenticate(email, password)
	if !ok {
		writeValidation(w, fieldError("non_field_errors", "Unable to log in with provided credentials."))
		return
	}
	if err := s.login(w, r, u.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.AddUser(User{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := s.login(w, r, u.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userJSON(u))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r, SessionCookie)
	delete(sess.Values, sessionUserKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		writeStoreError(w, err)
		return
	}
	writeDetail(w, http.StatusOK, "Successfully logged out.")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, userID int64) error {
	// A stale or foreign cookie fails to decode; start a fresh session.
	sess, _ := s.sessions.New(r, SessionCookie)
	sess.Values[sessionUserKey] = userID
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func userJSON(u *User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}
