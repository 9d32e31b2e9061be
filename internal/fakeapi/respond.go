package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("fakeapi: failed to encode JSON response")
	}
}

// writeDetail writes the {"detail": ...} body the REST framework uses for
// auth, permission and lookup failures.
func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, map[string]string{"detail": detail})
}

func writeNotFound(w http.ResponseWriter) {
	writeDetail(w, http.StatusNotFound, "Not found.")
}

// writeValidation writes a 400 with field errors.
func writeValidation(w http.ResponseWriter, fields ValidationError) {
	writeJSON(w, http.StatusBadRequest, fields)
}

// writeStoreError maps store errors onto responses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case ValidationError:
		writeValidation(w, e)
	default:
		if err == ErrNotFound {
			writeNotFound(w)
			return
		}
		log.Error().Err(err).Msg("fakeapi: unexpected store error")
		writeDetail(w, http.StatusInternalServerError, "A server error occurred.")
	}
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
