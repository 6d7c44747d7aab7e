package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/club-ladder/internal/app"
	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/httputil"
	"github.com/AdamBeresnev/club-ladder/internal/middleware"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func newRouter(a *app.App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(a.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		rows, err := a.Reports.Leaderboard(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get leaderboard", err)
			return
		}

		var latest *views.SessionSheet
		data, err := a.Sessions.Latest(r.Context())
		switch {
		case err == nil:
			sheet := views.PrepareSessionSheet(data)
			latest = &sheet
		case !errors.Is(err, club.ErrNotFound):
			httputil.InternalServerError(w, "Failed to get latest session", err)
			return
		}

		views.Render(w, r, views.LeaderboardPage(rows, latest))
	})

	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid session ID", err)
			return
		}

		data, err := a.Sessions.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, club.ErrNotFound) {
				httputil.NotFound(w, "Session not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get session", err)
			return
		}
		views.Render(w, r, views.SessionPage(views.PrepareSessionSheet(data)))
	})

	// Score sheet form: score_a_<match id> and score_b_<match id>. Blank pairs are skipped.
	r.Post("/sessions/{id}/scores", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.BadRequest(w, "Invalid session ID", err)
			return
		}
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}

		var rows []service.ScoreRow
		for key := range r.PostForm {
			matchIDStr, ok := strings.CutPrefix(key, "score_a_")
			if !ok {
				continue
			}
			matchID, err := uuid.Parse(matchIDStr)
			if err != nil {
				httputil.BadRequest(w, fmt.Sprintf("Invalid match ID '%s'", matchIDStr), err)
				return
			}
			scoreA := strings.TrimSpace(r.PostForm.Get(key))
			scoreB := strings.TrimSpace(r.PostForm.Get("score_b_" + matchIDStr))
			if scoreA == "" && scoreB == "" {
				continue
			}
			rows = append(rows, service.ScoreRow{MatchID: matchID, ScoreA: scoreA, ScoreB: scoreB})
		}

		if _, err := a.Results.SubmitScores(r.Context(), id, rows); err != nil {
			status, _ := httputil.Status(err)
			switch status {
			case http.StatusInternalServerError:
				httputil.InternalServerError(w, "Failed to submit scores", err)
			case http.StatusNotFound:
				httputil.NotFound(w, err.Error(), err)
			default:
				httputil.BadRequest(w, err.Error(), err)
			}
			return
		}
		http.Redirect(w, r, "/sessions/"+id.String(), http.StatusSeeOther)
	})

	r.Route("/api", func(r chi.Router) {
		h := &apiHandler{app: a}

		r.Get("/players", h.listPlayers)
		r.Post("/players", h.createPlayer)
		r.Post("/players/remove", h.removePlayers)
		r.Post("/players/import", h.importPlayers)
		r.Get("/players/eligible", h.eligiblePlayers)

		r.Post("/sessions", h.buildSession)
		r.Get("/sessions/latest", h.latestSession)
		r.Get("/sessions/{id}", h.getSession)
		r.Post("/sessions/{id}/scores", h.submitScores)

		r.Post("/matches", h.recordMatch)

		r.Get("/reports/leaderboard", h.leaderboard)
		r.Get("/reports/history", h.history)
		r.Get("/reports/performance", h.performance)
	})

	return r
}
