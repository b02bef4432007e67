package models

import "time"

// Category is the catalog grouping of a game.
type Category string

const (
	CategorySlot    Category = "SLOT"
	CategoryLive    Category = "LIVE"
	CategoryTable   Category = "TABLE"
	CategoryJackpot Category = "JACKPOT"
)

// Valid reports whether c is one of the known catalog categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySlot, CategoryLive, CategoryTable, CategoryJackpot:
		return true
	}
	return false
}

type Game struct {
	ID          string    `json:"id"`          // Primary key
	Title       string    `json:"title"`       // Display title
	Provider    string    `json:"provider"`    // Studio name, e.g. NetEnt
	Thumbnail   string    `json:"thumbnail"`   // Image reference
	Description string    `json:"description"` // Short marketing copy
	Category    Category  `json:"category"`    // SLOT, LIVE, TABLE, JACKPOT
	Popularity  int       `json:"popularity"`  // Integer popularity score
	IsActive    bool      `json:"isActive"`    // Only active games are browsable
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
