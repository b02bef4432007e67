package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	// public routes
	r.Get("/health", h.HealthHandler)
	r.Post("/auth/register", h.RegisterHandler)
	r.Post("/auth/login", h.LoginHandler)
	r.Get("/games", h.ListGamesHandler)
	r.Get("/games/{gameID}", h.GetGameHandler)

	// Secure routes
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(h.Authenticator)

		r.Get("/games/recent", h.RecentGamesHandler)
		r.Post("/games/{gameID}/play", h.PlayGameHandler)
		r.Post("/games/{gameID}/end", h.EndSessionHandler)

		r.Get("/favorites", h.ListFavoritesHandler)
		r.Post("/favorites/{gameID}", h.AddFavoriteHandler)
		r.Delete("/favorites/{gameID}", h.RemoveFavoriteHandler)
	})
}
