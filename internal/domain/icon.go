package domain

import (
	"encoding/json"
	"fmt"
)

// Icon is the closed set of category icons. Unknown names decode to IconNone
// instead of failing the whole payload.
type Icon int

const (
	IconNone Icon = iota
	IconCake
	IconPasta
	IconSalad
	IconSoup
	IconMeat
	IconFish
	IconDrink
	IconBread
)

var iconNames = [...]string{
	IconNone:  "",
	IconCake:  "cake",
	IconPasta: "pasta",
	IconSalad: "salad",
	IconSoup:  "soup",
	IconMeat:  "meat",
	IconFish:  "fish",
	IconDrink: "drink",
	IconBread: "bread",
}

var iconGlyphs = [...]string{
	IconNone:  "•",
	IconCake:  "🎂",
	IconPasta: "🍝",
	IconSalad: "🥗",
	IconSoup:  "🍲",
	IconMeat:  "🥩",
	IconFish:  "🐟",
	IconDrink: "🥤",
	IconBread: "🍞",
}

func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return ""
	}
	return iconNames[i]
}

// Glyph returns the symbol rendered next to a category name
func (i Icon) Glyph() string {
	if i < 0 || int(i) >= len(iconGlyphs) {
		return iconGlyphs[IconNone]
	}
	return iconGlyphs[i]
}

// ParseIcon maps a stored icon name back to an Icon
func ParseIcon(name string) Icon {
	for i, n := range iconNames {
		if n == name {
			return Icon(i)
		}
	}
	return IconNone
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("icon: %w", err)
	}
	*i = ParseIcon(name)
	return nil
}
