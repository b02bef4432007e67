package service

import (
	"context"
	"strings"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
)

// DefaultPageSize is the catalog page size when the caller supplies none.
const DefaultPageSize = 12

// CatalogStore is the game read path the catalog engine needs.
type CatalogStore interface {
	GetGameByID(ctx context.Context, gameID string) (*models.Game, error)
	ListGames(ctx context.Context, f models.CatalogFilter) ([]models.Game, int, error)
}

// CatalogService translates browse parameters into a deterministic page
// of active games. It holds no state of its own: identical parameters
// against unchanged data yield identical pages.
type CatalogService struct {
	gameStore CatalogStore
}

func NewCatalogService(gameStore CatalogStore) *CatalogService {
	return &CatalogService{gameStore: gameStore}
}

// CatalogQuery carries raw, caller-supplied browse parameters.
type CatalogQuery struct {
	Search   string
	Category string
	Provider string
	Sort     string
	Page     int
	Limit    int
}

// ListGames validates and normalizes the query, then returns one page plus
// pagination metadata. Page and limit below 1 are a validation error, never
// clamped. Unknown categories and sorts are ignored, not rejected.
func (s *CatalogService) ListGames(ctx context.Context, q CatalogQuery) (*models.GamePage, error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, models.ErrInvalidPagination
	}

	filter := models.CatalogFilter{
		Search:   strings.TrimSpace(q.Search),
		Provider: strings.TrimSpace(q.Provider),
		Sort:     normalizeSort(q.Sort),
		Offset:   (q.Page - 1) * q.Limit,
		Limit:    q.Limit,
	}

	if c := models.Category(strings.ToUpper(q.Category)); c.Valid() {
		filter.Category = c
	}

	games, total, err := s.gameStore.ListGames(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit

	return &models.GamePage{
		Data: games,
		Pagination: models.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetGame returns the game with the given id, active or not.
func (s *CatalogService) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, models.ErrGameNotFound
	}
	return game, nil
}

// normalizeSort falls back to popularity for anything unrecognized.
func normalizeSort(sort string) models.Sort {
	switch models.Sort(sort) {
	case models.SortName:
		return models.SortName
	case models.SortNewest:
		return models.SortNewest
	default:
		return models.SortPopularity
	}
}
