package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
)

func (h *Handler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	favorites, err := h.favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		log.Errorf("Error [FavoriteService.ListFavorites] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gameID := chi.URLParam(r, "gameID")

	favorite, err := h.favorites.AddFavorite(r.Context(), userID, gameID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrGameNotFound):
			writeError(w, http.StatusNotFound, "Game not found")
		case errors.Is(err, models.ErrAlreadyFavorited):
			writeError(w, http.StatusBadRequest, "Game already in favorites")
		default:
			log.Errorf("Error [FavoriteService.AddFavorite] %s", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, favorite)
}

func (h *Handler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gameID := chi.URLParam(r, "gameID")

	favorite, err := h.favorites.RemoveFavorite(r.Context(), userID, gameID)
	if err != nil {
		if errors.Is(err, models.ErrFavoriteNotFound) {
			writeError(w, http.StatusNotFound, "Favorite not found")
			return
		}
		log.Errorf("Error [FavoriteService.RemoveFavorite] %s", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, favorite)
}
