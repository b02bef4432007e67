package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/lestrrat-go/jwx/jwt"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/service"
)

const tokenTTL = 7 * 24 * time.Hour

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	auth      *service.AuthService
	catalog   *service.CatalogService
	sessions  *service.SessionService
	favorites *service.FavoriteService
}

func NewHandler(auth *service.AuthService, catalog *service.CatalogService,
	sessions *service.SessionService, favorites *service.FavoriteService) *Handler {
	return &Handler{
		auth:      auth,
		catalog:   catalog,
		sessions:  sessions,
		favorites: favorites,
	}
}

// InitAuth sets up the HS256 signer/verifier from JWT_SECRET_KEY.
func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// TokenAuth exposes the verifier for route wiring and tests.
func (h *Handler) TokenAuth() *jwtauth.JWTAuth {
	return h.tokenAuth
}

// issueToken signs a bearer token carrying the user's identity claims.
func (h *Handler) issueToken(user *models.User) (string, error) {
	now := time.Now()
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})

	return tokenString, err
}

// Authenticator rejects requests without a valid, unexpired token. Same
// checks as jwtauth.Authenticator, but failures answer in the API's JSON
// error shape.
func (h *Handler) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err := jwt.Validate(token); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUserID pulls the authenticated user id out of the token claims.
func (h *Handler) currentUserID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	id, ok := claims["user_id"].(string)
	return id, ok && id != ""
}

type errorBody struct {
	Message string `json:"message"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorBody{Message: message})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, errorBody{
		Message: "lobby service is running at port " + os.Getenv("LOBBY_SERVICE_PORT"),
	})
}
