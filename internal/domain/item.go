package domain

import (
	"strings"
	"time"
)

// Kind identifies which list an item belongs to
type Kind int

const (
	KindUnknown  Kind = iota
	KindRecipe        // /recipes
	KindPost          // /posts (blog)
	KindFavorite      // /favorites, recipes the current user favorited
)

func (k Kind) String() string {
	switch k {
	case KindRecipe:
		return "Recipe"
	case KindPost:
		return "Post"
	case KindFavorite:
		return "Favorite"
	default:
		return "Unknown"
	}
}

// Path returns the URL path segment for the kind (e.g. "recipes")
func (k Kind) Path() string {
	switch k {
	case KindRecipe:
		return "recipes"
	case KindPost:
		return "posts"
	case KindFavorite:
		return "favorites"
	default:
		return ""
	}
}

// ItemKind returns the kind that owns the items of this list. Favorites are
// recipes, so mutations from the favorites list go to the recipe endpoints.
func (k Kind) ItemKind() Kind {
	if k == KindFavorite {
		return KindRecipe
	}
	return k
}

// ParseKind accepts either the path segment ("recipes") or the singular name ("recipe")
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recipe", "recipes":
		return KindRecipe
	case "post", "posts", "blog":
		return KindPost
	case "favorite", "favorites":
		return KindFavorite
	default:
		return KindUnknown
	}
}

// ListItem is one row of a list page. Identity is the ID; nothing else is
// guaranteed to be unique.
type ListItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryID  int64     `json:"category_id,omitempty"`
	DietTagIDs  []int64   `json:"diet_ids,omitempty"`
	Author      string    `json:"author,omitempty"`
	PrepMinutes int       `json:"prep_minutes,omitempty"`
	IsFavorited bool      `json:"is_favorited"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// Page is a single paginated response from a list endpoint
type Page struct {
	Data []ListItem     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
