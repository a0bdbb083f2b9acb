package models

// Color is the display token of a category, rendered by the UI as a palette
// class such as bg-green-500.
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorTeal   Color = "teal"
	ColorIndigo Color = "indigo"
	ColorCyan   Color = "cyan"
	ColorGray   Color = "gray"
)

// Colors lists every accepted color token.
var Colors = []Color{
	ColorGreen, ColorBlue, ColorPurple, ColorPink, ColorOrange, ColorRed,
	ColorYellow, ColorTeal, ColorIndigo, ColorCyan, ColorGray,
}

// Valid reports whether c is a known token.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// UncategorizedName is shown for expenses whose category no longer exists.
const UncategorizedName = "Uncategorized"

// Category groups expenses. IDs are unique within one user's set; seeded
// categories use fixed tokens like "food", user-created ones get a UUID.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// NewCategory is a category before an id is assigned.
type NewCategory struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// CategoryPatch carries the fields to change; nil fields are left alone.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *Color  `json:"color,omitempty"`
}

// Apply merges the patch into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}

// UncategorizedCategory is the display fallback for a dangling category id.
func UncategorizedCategory(id string) Category {
	return Category{ID: id, Name: UncategorizedName, Color: ColorGray}
}

// ResolveCategory finds id in categories. Expenses keep soft references, so a
// missing id is expected after a delete and resolves to Uncategorized.
func ResolveCategory(categories []Category, id string) Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return UncategorizedCategory(id)
}

// DefaultCategories is the set installed for a user on first use.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Color: ColorGreen},
		{ID: "transportation", Name: "Transportation", Color: ColorBlue},
		{ID: "utilities", Name: "Utilities", Color: ColorPurple},
		{ID: "entertainment", Name: "Entertainment", Color: ColorPink},
		{ID: "shopping", Name: "Shopping", Color: ColorOrange},
		{ID: "health", Name: "Health & Medical", Color: ColorRed},
		{ID: "education", Name: "Education", Color: ColorYellow},
		{ID: "travel", Name: "Travel", Color: ColorTeal},
	}
}
