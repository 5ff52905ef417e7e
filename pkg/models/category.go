package models

// Category is a label from the closed prompt category set.
type Category string

const (
	CategoryGeneral         Category = "general"
	CategoryEducation       Category = "education"
	CategoryCreativeWriting Category = "creative-writing"
	CategoryProgramming     Category = "programming"
	CategoryArt             Category = "art"
	CategoryBusiness        Category = "business"
	CategoryPersonal        Category = "personal"
)

// CategoryInfo pairs a category with its display label.
type CategoryInfo struct {
	Value Category `json:"value" yaml:"value"`
	Label string   `json:"label" yaml:"label"`
}

// Categories lists every category in display order.
var Categories = []CategoryInfo{
	{Value: CategoryGeneral, Label: "General"},
	{Value: CategoryEducation, Label: "Education"},
	{Value: CategoryCreativeWriting, Label: "Creative Writing"},
	{Value: CategoryProgramming, Label: "Programming"},
	{Value: CategoryArt, Label: "Art & Design"},
	{Value: CategoryBusiness, Label: "Business"},
	{Value: CategoryPersonal, Label: "Personal"},
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, info := range Categories {
		if info.Value == c {
			return true
		}
	}
	return false
}

// Label returns the display label, falling back to the general label.
func (c Category) Label() string {
	for _, info := range Categories {
		if info.Value == c {
			return info.Label
		}
	}
	return Categories[0].Label
}

// ParseCategory maps a stored or user-supplied value onto the category set.
// Empty and unknown values yield CategoryGeneral; ok is false for unknown non-empty values.
func ParseCategory(s string) (c Category, ok bool) {
	if s == "" {
		return CategoryGeneral, true
	}
	c = Category(s)
	if c.Valid() {
		return c, true
	}
	return CategoryGeneral, false
}
