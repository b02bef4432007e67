package models

import "time"

// Favorite is the user-game bookmark relation.
// The (UserID, GameID) pair is unique in the store.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
	Game      *Game     `json:"game,omitempty"` // joined catalog data
}
