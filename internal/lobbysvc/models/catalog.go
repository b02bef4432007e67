package models

// Sort selects the catalog ordering. Every sort carries a secondary
// id ASC key so pages stay stable across identical score values.
type Sort string

const (
	SortPopularity Sort = "popularity" // popularity DESC
	SortName       Sort = "name"       // title ASC
	SortNewest     Sort = "newest"     // created_at DESC
)

// CatalogFilter is the normalized store-level query: empty strings mean
// "no filter", Category is either valid or empty, Offset/Limit are
// already validated page math.
type CatalogFilter struct {
	Search   string
	Category Category
	Provider string
	Sort     Sort
	Offset   int
	Limit    int
}

// Pagination is the page metadata returned alongside catalog data.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// GamePage is one page of catalog results.
type GamePage struct {
	Data       []Game     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
