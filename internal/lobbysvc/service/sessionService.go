package service

import (
	"context"
	"time"

	"github.com/goldenreel/lobby-services/internal/comm"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	log "github.com/sirupsen/logrus"
)

// DefaultRecentLimit is the recent-games count when the caller supplies none.
const DefaultRecentLimit = 8

// recentFetchFactor over-fetches the session log so repeat plays of the
// same game still leave enough distinct games to fill the limit.
const recentFetchFactor = 3

// SessionStore is the session persistence the lifecycle manager needs.
type SessionStore interface {
	CreateSession(ctx context.Context, userID, gameID string) (*models.GameSession, error)
	CloseLatestOpen(ctx context.Context, userID, gameID string) (*models.GameSession, error)
	RecentPlayed(ctx context.Context, userID string, fetch int) ([]models.PlayedGame, error)
}

// GameGetter resolves catalog entries by id.
type GameGetter interface {
	GetGameByID(ctx context.Context, gameID string) (*models.Game, error)
}

// EventPublisher pushes session lifecycle events to interested consumers.
type EventPublisher interface {
	PublishSessionEvent(ev comm.SessionEvent) error
}

// SessionService drives the no-session -> open -> closed lifecycle of
// play sessions. Events is optional; when nil the lobby runs silently.
type SessionService struct {
	sessionStore SessionStore
	gameStore    GameGetter
	events       EventPublisher
}

func NewSessionService(sessionStore SessionStore, gameStore GameGetter, events EventPublisher) *SessionService {
	return &SessionService{
		sessionStore: sessionStore,
		gameStore:    gameStore,
		events:       events,
	}
}

// StartSession opens a new session for the game. Existing open sessions
// for the same (user, game) pair are left alone: concurrent opens are
// allowed, end-session resolves the newest one.
func (s *SessionService) StartSession(ctx context.Context, userID, gameID string) (*models.GameSession, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, models.ErrGameNotFound
	}

	session, err := s.sessionStore.CreateSession(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	s.publish(comm.SessionStarted, session)

	return session, nil
}

// EndSession closes the most recently started open session for the pair.
// Once ended_at is set the session is terminal.
func (s *SessionService) EndSession(ctx context.Context, userID, gameID string) (*models.GameSession, error) {
	session, err := s.sessionStore.CloseLatestOpen(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	s.publish(comm.SessionEnded, session)

	return session, nil
}

// RecentGames assembles the user's distinct recently played games, newest
// first, up to limit entries.
func (s *SessionService) RecentGames(ctx context.Context, userID string, limit int) ([]models.Game, error) {
	if limit < 1 {
		limit = 1
	}

	played, err := s.sessionStore.RecentPlayed(ctx, userID, limit*recentFetchFactor)
	if err != nil {
		return nil, err
	}

	return DedupeRecent(played, limit), nil
}

// DedupeRecent keeps the first occurrence of each game in an already
// newest-first session list, stopping once limit distinct games are found.
func DedupeRecent(played []models.PlayedGame, limit int) []models.Game {
	seen := make(map[string]struct{}, limit)
	games := []models.Game{}

	for _, p := range played {
		if _, ok := seen[p.Session.GameID]; ok {
			continue
		}
		seen[p.Session.GameID] = struct{}{}
		games = append(games, p.Game)
		if len(games) >= limit {
			break
		}
	}

	return games
}

// publish emits a lifecycle event; failures are logged, never returned,
// the broker is advisory only.
func (s *SessionService) publish(eventType string, session *models.GameSession) {
	if s.events == nil {
		return
	}

	ev := comm.SessionEvent{
		Type:      eventType,
		Session:   *session,
		Timestamp: time.Now(),
	}
	if err := s.events.PublishSessionEvent(ev); err != nil {
		log.Errorf("Error publishing %s event: %s", eventType, err)
	}
}
