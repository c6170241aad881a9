package repository

import (
	"context"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
)

// RecipeRepository owns recipe rows and their tag/ingredient association
// rows. All read methods return recipes with associations loaded.
type RecipeRepository interface {
	// Create persists the recipe and its association rows in one transaction.
	Create(ctx context.Context, r *entity.Recipe, tagIDs, ingredientIDs []int64) error

	GetByID(ctx context.Context, id int64) (*entity.Recipe, error)

	// List returns userID's recipes in id order. A non-empty tagIDs set keeps
	// recipes with at least one tag in the set; ingredientIDs filters the
	// same way independently. Each recipe appears once.
	List(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]entity.Recipe, error)

	Update(ctx context.Context, r *entity.Recipe) error
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	SetIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error
	UpdateImage(ctx context.Context, recipeID int64, image string) error
	Delete(ctx context.Context, id int64) error
}
