package domain

// Category groups recipes and posts (e.g. "Bolos", "Massas")
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
	Icon Icon   `json:"icon,omitempty"`
}

// DietTag marks a recipe as suitable for a diet (e.g. "Vegano", "Sem glúten")
type DietTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Taxonomy is what a list view loads once when it mounts
type Taxonomy struct {
	Categories []Category
	DietTags   []DietTag
}

// Category looks up a category by id
func (t Taxonomy) Category(id int64) (Category, bool) {
	for _, c := range t.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the name for id, or "" if unknown
func (t Taxonomy) CategoryName(id int64) string {
	c, _ := t.Category(id)
	return c.Name
}

// DietTagName returns the name for id, or "" if unknown
func (t Taxonomy) DietTagName(id int64) string {
	for _, d := range t.DietTags {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}
