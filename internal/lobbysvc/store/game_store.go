package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const gameColumns = "id, title, provider, thumbnail, description, category, popularity, is_active, created_at, updated_at"

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.Title,
		&game.Provider,
		&game.Thumbnail,
		&game.Description,
		&game.Category,
		&game.Popularity,
		&game.IsActive,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// CreateGame inserts a catalog entry. Used by seeding and admin tooling,
// the browse API never writes games.
func (s *GameStore) CreateGame(ctx context.Context, game *models.Game) error {
	game.ID = uuid.NewString()

	query := `
		INSERT INTO games (id, title, provider, thumbnail, description, category, popularity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at;
	`

	err := s.db.QueryRow(ctx, query,
		game.ID, game.Title, game.Provider, game.Thumbnail, game.Description,
		game.Category, game.Popularity, game.IsActive,
	).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	return nil
}

// ListGames runs the catalog query: count plus one page of active games
// matching the filter. The is_active guard is always present and cannot
// be switched off by callers.
func (s *GameStore) ListGames(ctx context.Context, f models.CatalogFilter) ([]models.Game, int, error) {
	where, args := buildCatalogWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM games WHERE " + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM games WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		gameColumns, where, orderClause(f.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		err := rows.Scan(
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
			return nil, 0, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read games: %w", err)
	}

	return games, total, nil
}

// buildCatalogWhere composes the conjunctive filter. Search matches any of
// title, description or provider; all text matching is case-insensitive.
func buildCatalogWhere(f models.CatalogFilter) (string, []interface{}) {
	conds := []string{"is_active = TRUE"}
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE '%%'||$%d||'%%' OR description ILIKE '%%'||$%d||'%%' OR provider ILIKE '%%'||$%d||'%%')",
			n, n, n,
		))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Provider != "" {
		args = append(args, f.Provider)
		conds = append(conds, fmt.Sprintf("provider ILIKE '%%'||$%d||'%%'", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// orderClause maps a validated sort to SQL. The id tie-break keeps pages
// stable when popularity, title or created_at collide.
func orderClause(sort models.Sort) string {
	switch sort {
	case models.SortName:
		return "title ASC, id ASC"
	case models.SortNewest:
		return "created_at DESC, id ASC"
	default:
		return "popularity DESC, id ASC"
	}
}
