package httputil

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/beach-volley/internal/revenue"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
)

type errorBody struct {
	Error string `json:"error"`
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	writeError(w, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	writeError(w, http.StatusNotFound, msg)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	writeError(w, http.StatusConflict, msg)
}

func Unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "authentication required")
}

// StatusFor maps a domain error onto the HTTP status it should surface as.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, tournament.ErrReference),
		errors.Is(err, revenue.ErrLedgerNotFound),
		errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, tournament.ErrPrecondition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError answers with the status matching err. Unknown errors are logged
// and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, msg string, err error) {
	switch StatusFor(err) {
	case http.StatusBadRequest:
		BadRequest(w, err.Error(), err)
	case http.StatusNotFound:
		NotFound(w, err.Error(), err)
	case http.StatusConflict:
		Conflict(w, err.Error(), err)
	default:
		InternalServerError(w, msg, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if err := WriteJSON(w, status, errorBody{Error: msg}, nil); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
