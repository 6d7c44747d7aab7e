package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/app"
	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/httputil"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type apiHandler struct {
	app *app.App
}

type createPlayerRequest struct {
	Name         string            `json:"name"`
	Rating       *float64          `json:"rating"`
	Tier         string            `json:"tier"`
	Availability club.Availability `json:"availability"`
}

type removePlayersRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type buildSessionRequest struct {
	Format    string      `json:"format"`
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

type submitScoresRequest struct {
	Rows []service.ScoreRow `json:"rows"`
}

type recordMatchRequest struct {
	SideA string `json:"side_a"`
	SideB string `json:"side_b"`
	// "A", "B", "draw" or a player name
	Winner string `json:"winner"`
}

func (h *apiHandler) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.app.Players.List(r.Context())
	if err != nil {
		httputil.Error(w, "Failed to list players", err)
		return
	}
	httputil.JSON(w, http.StatusOK, players)
}

func (h *apiHandler) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.InvalidRequest(w, "Invalid player body", err)
		return
	}

	tier, err := rating.ParseTier(req.Tier)
	if err != nil {
		httputil.Error(w, "Invalid tier", err)
		return
	}

	player, err := h.app.Players.Create(r.Context(), service.PlayerInput{
		Name:         req.Name,
		Rating:       req.Rating,
		Tier:         tier,
		Availability: req.Availability,
	})
	if err != nil {
		httputil.Error(w, "Failed to create player", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, player)
}

func (h *apiHandler) removePlayers(w http.ResponseWriter, r *http.Request) {
	var req removePlayersRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.InvalidRequest(w, "Invalid remove body", err)
		return
	}

	removed, err := h.app.Players.Remove(r.Context(), req.IDs...)
	if err != nil {
		httputil.Error(w, "Failed to remove players", err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// importPlayers takes the CSV roster as the raw request body.
func (h *apiHandler) importPlayers(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Imports.ImportCSV(r.Context(), r.Body)
	if err != nil {
		httputil.Error(w, "Failed to import players", err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

func (h *apiHandler) eligiblePlayers(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse(club.DateLayout, v)
		if err != nil {
			httputil.InvalidRequest(w, "date must be YYYY-MM-DD", err)
			return
		}
		day = parsed
	}

	players, err := h.app.Players.ListEligible(r.Context(), day)
	if err != nil {
		httputil.Error(w, "Failed to list eligible players", err)
		return
	}
	httputil.JSON(w, http.StatusOK, players)
}

func (h *apiHandler) buildSession(w http.ResponseWriter, r *http.Request) {
	var req buildSessionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.InvalidRequest(w, "Invalid session body", err)
		return
	}

	format, err := club.ParseFormat(req.Format)
	if err != nil {
		httputil.Error(w, "Invalid format", err)
		return
	}

	data, err := h.app.Sessions.Build(r.Context(), service.BuildRequest{Format: format, PlayerIDs: req.PlayerIDs})
	if err != nil {
		httputil.Error(w, "Failed to build session", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, data)
}

func (h *apiHandler) latestSession(w http.ResponseWriter, r *http.Request) {
	data, err := h.app.Sessions.Latest(r.Context())
	if err != nil {
		httputil.Error(w, "Failed to get latest session", err)
		return
	}
	httputil.JSON(w, http.StatusOK, data)
}

func (h *apiHandler) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	data, err := h.app.Sessions.Get(r.Context(), id)
	if err != nil {
		httputil.Error(w, "Failed to get session", err)
		return
	}
	httputil.JSON(w, http.StatusOK, data)
}

func (h *apiHandler) submitScores(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req submitScoresRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.InvalidRequest(w, "Invalid scores body", err)
		return
	}

	result, err := h.app.Results.SubmitScores(r.Context(), id, req.Rows)
	if err != nil {
		httputil.Error(w, "Failed to submit scores", err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

func (h *apiHandler) recordMatch(w http.ResponseWriter, r *http.Request) {
	var req recordMatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.InvalidRequest(w, "Invalid match body", err)
		return
	}

	outcome, err := service.ParseOutcome(req.Winner, req.SideA, req.SideB)
	if err != nil {
		httputil.Error(w, "Invalid winner", err)
		return
	}

	result, err := h.app.Results.RecordManualMatch(r.Context(), req.SideA, req.SideB, outcome)
	if err != nil {
		httputil.Error(w, "Failed to record match", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, result)
}

func (h *apiHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.app.Reports.Leaderboard(r.Context())
	if err != nil {
		httputil.Error(w, "Failed to get leaderboard", err)
		return
	}
	httputil.JSON(w, http.StatusOK, rows)
}

func (h *apiHandler) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.InvalidRequest(w, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}

	rows, err := h.app.Reports.MatchHistory(r.Context(), limit)
	if err != nil {
		httputil.Error(w, "Failed to get match history", err)
		return
	}
	httputil.JSON(w, http.StatusOK, rows)
}

func (h *apiHandler) performance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.app.Reports.Performance(r.Context())
	if err != nil {
		httputil.Error(w, "Failed to get performance report", err)
		return
	}
	httputil.JSON(w, http.StatusOK, rows)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.InvalidRequest(w, "Invalid session ID", err)
		return uuid.Nil, false
	}
	return id, true
}
