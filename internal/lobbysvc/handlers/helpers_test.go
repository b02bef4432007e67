package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/service"
)

// In-memory stores backing the real services, so handler tests cover the
// full request path without Postgres.

type memCatalog struct {
	games []models.Game
}

func (m *memCatalog) GetGameByID(_ context.Context, gameID string) (*models.Game, error) {
	for i := range m.games {
		if m.games[i].ID == gameID {
			g := m.games[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memCatalog) ListGames(_ context.Context, f models.CatalogFilter) ([]models.Game, int, error) {
	matched := []models.Game{}
	for _, g := range m.games {
		if !g.IsActive {
			continue
		}
		if f.Search != "" && !containsFold(g.Title, f.Search) &&
			!containsFold(g.Description, f.Search) && !containsFold(g.Provider, f.Search) {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		if f.Provider != "" && !containsFold(g.Provider, f.Provider) {
			continue
		}
		matched = append(matched, g)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch f.Sort {
		case models.SortName:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case models.SortNewest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		default:
			if a.Popularity != b.Popularity {
				return a.Popularity > b.Popularity
			}
		}
		return a.ID < b.ID
	})

	total := len(matched)
	if f.Offset >= total {
		return []models.Game{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type memSessions struct {
	games    *memCatalog
	sessions []models.GameSession
	nextID   int
}

func (m *memSessions) CreateSession(_ context.Context, userID, gameID string) (*models.GameSession, error) {
	m.nextID++
	s := models.GameSession{
		ID:        fmt.Sprintf("s%03d", m.nextID),
		UserID:    userID,
		GameID:    gameID,
		StartedAt: time.Now(),
	}
	m.sessions = append(m.sessions, s)
	return &s, nil
}

func (m *memSessions) CloseLatestOpen(_ context.Context, userID, gameID string) (*models.GameSession, error) {
	best := -1
	for i, s := range m.sessions {
		if s.UserID != userID || s.GameID != gameID || s.EndedAt != nil {
			continue
		}
		if best == -1 || s.StartedAt.After(m.sessions[best].StartedAt) ||
			(s.StartedAt.Equal(m.sessions[best].StartedAt) && s.ID > m.sessions[best].ID) {
			best = i
		}
	}
	if best == -1 {
		return nil, models.ErrNoActiveSession
	}

	now := time.Now()
	m.sessions[best].EndedAt = &now
	s := m.sessions[best]
	return &s, nil
}

func (m *memSessions) RecentPlayed(ctx context.Context, userID string, fetch int) ([]models.PlayedGame, error) {
	ordered := make([]models.GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.UserID == userID {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartedAt.Equal(ordered[j].StartedAt) {
			return ordered[i].StartedAt.After(ordered[j].StartedAt)
		}
		return ordered[i].ID > ordered[j].ID
	})
	if len(ordered) > fetch {
		ordered = ordered[:fetch]
	}

	played := []models.PlayedGame{}
	for _, s := range ordered {
		g, _ := m.games.GetGameByID(ctx, s.GameID)
		if g == nil {
			continue
		}
		played = append(played, models.PlayedGame{Session: s, Game: *g})
	}
	return played, nil
}

type memFavorites struct {
	games  *memCatalog
	rows   []models.Favorite
	nextID int
}

func (m *memFavorites) CreateFavorite(_ context.Context, userID, gameID string) (*models.Favorite, error) {
	for _, f := range m.rows {
		if f.UserID == userID && f.GameID == gameID {
			return nil, models.ErrAlreadyFavorited
		}
	}

	m.nextID++
	f := models.Favorite{
		ID:        fmt.Sprintf("f%03d", m.nextID),
		UserID:    userID,
		GameID:    gameID,
		CreatedAt: time.Now(),
	}
	m.rows = append(m.rows, f)
	return &f, nil
}

func (m *memFavorites) DeleteFavorite(_ context.Context, userID, gameID string) (*models.Favorite, error) {
	for i, f := range m.rows {
		if f.UserID == userID && f.GameID == gameID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return &f, nil
		}
	}
	return nil, models.ErrFavoriteNotFound
}

func (m *memFavorites) ListFavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, f := range m.rows {
		if f.UserID != userID {
			continue
		}
		g, _ := m.games.GetGameByID(ctx, f.GameID)
		f.Game = g
		out = append(out, f)
	}
	return out, nil
}

type memUsers struct {
	users  []models.User
	nextID int
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.ErrDuplicateUser
		}
	}

	m.nextID++
	user.ID = fmt.Sprintf("u%03d", m.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, *user)
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// env wires real services over the in-memory stores behind a chi router.
type env struct {
	handler  *Handler
	router   *chi.Mux
	catalog  *memCatalog
	sessions *memSessions
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	catalog := &memCatalog{games: []models.Game{
		{ID: "g1", Title: "Wolf Gold", Provider: "Pragmatic Play", Category: models.CategorySlot,
			Description: "Money re-spin feature under a desert moon", Popularity: 95, IsActive: true},
		{ID: "g2", Title: "Book of Gold", Provider: "Playtech", Category: models.CategorySlot,
			Description: "Free spins with an expanding golden symbol", Popularity: 76, IsActive: true},
		{ID: "g3", Title: "Crazy Time", Provider: "Evolution Gaming", Category: models.CategoryLive,
			Description: "Live game show with four bonus rounds", Popularity: 99, IsActive: true},
		{ID: "g4", Title: "Gold Rush Retired", Provider: "NetEnt", Category: models.CategorySlot,
			Description: "Removed from the lobby", Popularity: 100, IsActive: false},
	}}
	sessions := &memSessions{games: catalog}
	users := &memUsers{}
	favorites := &memFavorites{games: catalog}

	h := NewHandler(
		service.NewAuthService(users),
		service.NewCatalogService(catalog),
		service.NewSessionService(sessions, catalog, nil),
		service.NewFavoriteService(favorites, catalog),
	)
	h.InitAuth()

	r := chi.NewRouter()
	h.SetRoutes(r)

	return &env{handler: h, router: r, catalog: catalog, sessions: sessions}
}

func (e *env) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func (e *env) registerUser(t *testing.T, email, username string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"username": username,
		"password": "Str0ngPass",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorBody](t, w).Message
}
