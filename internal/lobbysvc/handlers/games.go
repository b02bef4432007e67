package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/service"
)

func (h *Handler) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, okPage := parsePositive(query.Get("page"), 1)
	limit, okLimit := parsePositive(query.Get("limit"), service.DefaultPageSize)
	if !okPage || !okLimit {
		writeError(w, http.StatusBadRequest, "Page and limit must be positive numbers")
		return
	}

	pageData, err := h.catalog.ListGames(r.Context(), service.CatalogQuery{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Provider: query.Get("provider"),
		Sort:     query.Get("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidPagination) {
			writeError(w, http.StatusBadRequest, "Page and limit must be positive numbers")
			return
		}
		log.Errorf("Error [CatalogService.ListGames] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, pageData)
}

func (h *Handler) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, err := h.catalog.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, models.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		log.Errorf("Error [CatalogService.GetGame] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (h *Handler) PlayGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "Missing game id")
		return
	}

	session, err := h.sessions.StartSession(r.Context(), userID, gameID)
	if err != nil {
		if errors.Is(err, models.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		log.Errorf("Error [SessionService.StartSession] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) EndSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gameID := resolveGameID(r)
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "Missing game id")
		return
	}

	session, err := h.sessions.EndSession(r.Context(), userID, gameID)
	if err != nil {
		if errors.Is(err, models.ErrNoActiveSession) {
			writeError(w, http.StatusNotFound, "No active session found")
			return
		}
		log.Errorf("Error [SessionService.EndSession] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.GameSession{"session": session})
}

func (h *Handler) RecentGamesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, ok := parsePositive(r.URL.Query().Get("limit"), service.DefaultRecentLimit)
	if !ok {
		limit = service.DefaultRecentLimit
	}

	games, err := h.sessions.RecentGames(r.Context(), userID, limit)
	if err != nil {
		log.Errorf("Error [SessionService.RecentGames] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Game{"data": games})
}

// resolveGameID finds the game identifier for end-session. Precedence:
// route param, then body gameId or id, then the second-to-last URL path
// segment (/games/<id>/end). First non-empty wins.
func resolveGameID(r *http.Request) string {
	if id := chi.URLParam(r, "gameID"); id != "" {
		return id
	}

	var body struct {
		GameID string `json:"gameId"`
		ID     string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
		if body.GameID != "" {
			return body.GameID
		}
		if body.ID != "" {
			return body.ID
		}
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) >= 2 {
		maybe := parts[len(parts)-2]
		if maybe != "games" && maybe != "end" && maybe != "api" {
			return maybe
		}
	}

	return ""
}

// parsePositive parses a query number with a default for the empty string.
// Returns false for anything non-numeric or negative; the caller decides
// whether that is a validation failure.
func parsePositive(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
