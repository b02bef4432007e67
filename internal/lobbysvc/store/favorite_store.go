package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteStore struct {
	db *pgxpool.Pool
}

func NewFavoriteStore(db *pgxpool.Pool) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// CreateFavorite inserts the (user, game) bookmark. The unique_user_game
// constraint resolves concurrent adds: the second writer gets
// models.ErrAlreadyFavorited instead of a second row.
func (s *FavoriteStore) CreateFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error) {
	fav := &models.Favorite{
		ID:     uuid.NewString(),
		UserID: userID,
		GameID: gameID,
	}

	query := `
		INSERT INTO favorites (id, user_id, game_id)
		VALUES ($1, $2, $3)
		RETURNING created_at;
	`

	err := s.db.QueryRow(ctx, query, fav.ID, fav.UserID, fav.GameID).Scan(&fav.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, models.ErrAlreadyFavorited
			case "23503":
				return nil, models.ErrGameNotFound
			}
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	return fav, nil
}

// DeleteFavorite removes the (user, game) bookmark and returns the deleted
// row, or models.ErrFavoriteNotFound if there was none.
func (s *FavoriteStore) DeleteFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error) {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND game_id = $2
		RETURNING id, user_id, game_id, created_at;
	`

	fav := &models.Favorite{}
	err := s.db.QueryRow(ctx, query, userID, gameID).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.GameID,
		&fav.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to delete favorite: %w", err)
	}

	return fav, nil
}

// ListFavoritesByUser returns the user's bookmarks joined with full game
// data, oldest first.
func (s *FavoriteStore) ListFavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.game_id, f.created_at,
		       g.id, g.title, g.provider, g.thumbnail, g.description,
		       g.category, g.popularity, g.is_active, g.created_at, g.updated_at
		FROM favorites f
		JOIN games g ON g.id = f.game_id
		WHERE f.user_id = $1
		ORDER BY f.created_at ASC, f.id ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		var g models.Game
		err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.GameID,
			&f.CreatedAt,
			&g.ID,
			&g.Title,
			&g.Provider,
			&g.Thumbnail,
			&g.Description,
			&g.Category,
			&g.Popularity,
			&g.IsActive,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Game = &g
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	return favorites, nil
}
