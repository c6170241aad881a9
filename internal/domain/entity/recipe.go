package entity

import (
	"time"
)

// Recipe is owned by exactly one user. Image is the media-relative path of
// the uploaded picture, empty when none has been uploaded yet.
type Recipe struct {
	ID          int64
	Title       string
	Price       Price
	Instruction string
	TimeMinutes int
	Image       string
	UserID      int64
	Tags        []Attribute
	Ingredients []Attribute
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagIDs returns the ids of the associated tags.
func (r *Recipe) TagIDs() []int64 {
	return attributeIDs(r.Tags)
}

// IngredientIDs returns the ids of the associated ingredients.
func (r *Recipe) IngredientIDs() []int64 {
	return attributeIDs(r.Ingredients)
}

func attributeIDs(attrs []Attribute) []int64 {
	ids := make([]int64, 0, len(attrs))
	for _, a := range attrs {
		ids = append(ids, a.ID)
	}
	return ids
}
