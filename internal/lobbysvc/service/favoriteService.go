package service

import (
	"context"

	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
)

// FavoriteStore is the bookmark persistence the registry needs.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error)
	ListFavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}

// FavoriteService manages the user-game favorite relation. Toggling is
// client-orchestrated: callers pick add or remove and treat
// ErrAlreadyFavorited / ErrFavoriteNotFound as reconcilable outcomes.
type FavoriteService struct {
	favoriteStore FavoriteStore
	gameStore     GameGetter
}

func NewFavoriteService(favoriteStore FavoriteStore, gameStore GameGetter) *FavoriteService {
	return &FavoriteService{
		favoriteStore: favoriteStore,
		gameStore:     gameStore,
	}
}

// AddFavorite bookmarks the game for the user and returns the favorite
// joined with catalog data. The store's uniqueness constraint decides
// races: a duplicate add yields ErrAlreadyFavorited, never a second row.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, models.ErrGameNotFound
	}

	fav, err := s.favoriteStore.CreateFavorite(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	fav.Game = game

	return fav, nil
}

// RemoveFavorite deletes the bookmark; absent pairs are ErrFavoriteNotFound.
// A successful remove clears the uniqueness slot, so a later add succeeds.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, gameID string) (*models.Favorite, error) {
	return s.favoriteStore.DeleteFavorite(ctx, userID, gameID)
}

// ListFavorites returns all of the user's bookmarks with game data,
// insertion order.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.favoriteStore.ListFavoritesByUser(ctx, userID)
}
