package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

// CreateSession opens a new play session. No exclusivity check: the same
// user may hold several open sessions, even for the same game.
func (s *SessionStore) CreateSession(ctx context.Context, userID, gameID string) (*models.GameSession, error) {
	session := &models.GameSession{
		ID:     uuid.NewString(),
		UserID: userID,
		GameID: gameID,
	}

	query := `
		INSERT INTO game_sessions (id, user_id, game_id)
		VALUES ($1, $2, $3)
		RETURNING started_at;
	`

	err := s.db.QueryRow(ctx, query, session.ID, session.UserID, session.GameID).Scan(&session.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// CloseLatestOpen ends the most recently started open session for the
// (user, game) pair. Ties on started_at fall back to id so the pick is
// deterministic. Returns models.ErrNoActiveSession when nothing is open.
func (s *SessionStore) CloseLatestOpen(ctx context.Context, userID, gameID string) (*models.GameSession, error) {
	query := `
		UPDATE game_sessions
		SET ended_at = now()
		WHERE id = (
			SELECT id FROM game_sessions
			WHERE user_id = $1 AND game_id = $2 AND ended_at IS NULL
			ORDER BY started_at DESC, id DESC
			LIMIT 1
		)
		RETURNING id, user_id, game_id, started_at, ended_at;
	`

	session := &models.GameSession{}
	err := s.db.QueryRow(ctx, query, userID, gameID).Scan(
		&session.ID,
		&session.UserID,
		&session.GameID,
		&session.StartedAt,
		&session.EndedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	return session, nil
}

// RecentPlayed returns the user's newest sessions joined with game data,
// newest first, capped at fetch rows. Deduplication by game happens in
// the service layer.
func (s *SessionStore) RecentPlayed(ctx context.Context, userID string, fetch int) ([]models.PlayedGame, error) {
	query := `
		SELECT s.id, s.user_id, s.game_id, s.started_at, s.ended_at,
		       g.id, g.title, g.provider, g.thumbnail, g.description,
		       g.category, g.popularity, g.is_active, g.created_at, g.updated_at
		FROM game_sessions s
		JOIN games g ON g.id = s.game_id
		WHERE s.user_id = $1
		ORDER BY s.started_at DESC, s.id DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}
	defer rows.Close()

	played := []models.PlayedGame{}
	for rows.Next() {
		var p models.PlayedGame
		err := rows.Scan(
			&p.Session.ID,
			&p.Session.UserID,
			&p.Session.GameID,
			&p.Session.StartedAt,
			&p.Session.EndedAt,
			&p.Game.ID,
			&p.Game.Title,
			&p.Game.Provider,
			&p.Game.Thumbnail,
			&p.Game.Description,
			&p.Game.Category,
			&p.Game.Popularity,
			&p.Game.IsActive,
			&p.Game.CreatedAt,
			&p.Game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent session: %w", err)
		}
		played = append(played, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent sessions: %w", err)
	}

	return played, nil
}
