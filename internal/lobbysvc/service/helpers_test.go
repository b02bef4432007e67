package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goldenreel/lobby-services/internal/comm"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
)

// memGames is an in-memory CatalogStore that honors the documented query
// contract: conjunctive filters, is_active guard, sort with id tie-break.
type memGames struct {
	games      []models.Game
	lastFilter models.CatalogFilter
}

func (m *memGames) GetGameByID(_ context.Context, gameID string) (*models.Game, error) {
	for i := range m.games {
		if m.games[i].ID == gameID {
			g := m.games[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memGames) ListGames(_ context.Context, f models.CatalogFilter) ([]models.Game, int, error) {
	m.lastFilter = f

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

// memSessions is an in-memory SessionStore.
type memSessions struct {
	games     *memGames
	sessions  []models.GameSession
	lastFetch int
	nextID    int
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
	m.lastFetch = fetch

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

// memFavorites is an in-memory FavoriteStore with the uniqueness constraint.
type memFavorites struct {
	rows   []models.Favorite
	games  *memGames
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

// memUsers is an in-memory UserStore with unique email and username.
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

// recordingPublisher captures published session events.
type recordingPublisher struct {
	events []comm.SessionEvent
}

func (p *recordingPublisher) PublishSessionEvent(ev comm.SessionEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func activeGame(id, title, provider string, cat models.Category, popularity int) models.Game {
	return models.Game{
		ID:         id,
		Title:      title,
		Provider:   provider,
		Category:   cat,
		Popularity: popularity,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
}
