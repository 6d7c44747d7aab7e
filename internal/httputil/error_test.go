package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: fmt.Errorf("player x: %w", club.ErrNotFound), status: http.StatusNotFound, code: CodeNotFound},
		{name: "duplicate", err: club.ErrDuplicateName, status: http.StatusConflict, code: CodeDuplicateName},
		{name: "already scored", err: club.ErrAlreadyScored, status: http.StatusConflict, code: CodeAlreadyScored},
		{name: "insufficient", err: &club.InsufficientPlayersError{Format: club.Doubles, Have: 3, Need: 4}, status: http.StatusUnprocessableEntity, code: CodeInsufficientPlayers},
		{name: "invalid score", err: &club.InvalidScoreError{Field: "row 1 score A", Value: "-2"}, status: http.StatusBadRequest, code: CodeInvalidScore},
		{name: "side mismatch", err: club.ErrSideMismatch, status: http.StatusBadRequest, code: CodeInvalidRequest},
		{name: "store", err: fmt.Errorf("%w: disk full", club.ErrStoreUnavailable), status: http.StatusInternalServerError, code: CodeInternalError},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: CodeInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, "failed", fmt.Errorf("%w: disk I/O error", club.ErrStoreUnavailable))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeInternalError, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "disk")
}
