package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/club-ladder/internal/club"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeAlreadyScored       = "ALREADY_SCORED"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Status maps a domain error onto an HTTP status and error code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, club.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, club.ErrDuplicateName):
		return http.StatusConflict, CodeDuplicateName
	case errors.Is(err, club.ErrAlreadyScored):
		return http.StatusConflict, CodeAlreadyScored
	case errors.Is(err, club.ErrInsufficientPlayers):
		return http.StatusUnprocessableEntity, CodeInsufficientPlayers
	case errors.Is(err, club.ErrInvalidScore):
		return http.StatusBadRequest, CodeInvalidScore
	case club.IsValidation(err):
		return http.StatusBadRequest, CodeInvalidRequest
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// Error writes err as a JSON error body. Store failures are logged and
// reported without their details.
func Error(w http.ResponseWriter, msg string, err error) {
	status, code := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error(msg, "error", err)
		message = "Internal server error"
	} else {
		slog.Warn(msg, "status", status, "error", err)
	}

	JSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message}})
}

// InvalidRequest writes a 400 for a malformed body or parameter.
func InvalidRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	}
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: APIError{Code: CodeInvalidRequest, Message: msg}})
}
