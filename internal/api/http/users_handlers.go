package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matchpoint-gg/matchpoint/internal/match"
	"github.com/matchpoint-gg/matchpoint/internal/user"
)

func ListUsersHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := users.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list users")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetUserHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		u, err := users.GetByID(r.Context(), id)
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "get user")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// PATCH /api/users/{id}/live  { "live": true }
func SetLiveHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		var req struct {
			Live *bool `json:"live"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Live == nil {
			writeError(w, http.StatusBadRequest, "live is required")
			return
		}
		err = users.SetLive(r.Context(), id, *req.Live)
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "update live status")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Live status updated"})
	}
}

func UserStatsHandler(matches match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		st, err := matches.Stats(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "load stats")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func UserMatchesHandler(matches match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		hist, err := matches.History(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "load match history")
			return
		}
		writeJSON(w, http.StatusOK, hist)
	}
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
