package repository

import (
	"context"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
)

// AttributeRepository backs both tags and ingredients; each gets its own
// instance bound to the right table and recipe join table.
type AttributeRepository interface {
	Create(ctx context.Context, a *entity.Attribute) error

	// List returns the user's attributes ordered by name. With assignedOnly
	// the result is restricted to attributes referenced by at least one
	// recipe, regardless of that recipe's owner, each attribute once.
	List(ctx context.Context, userID int64, assignedOnly bool) ([]entity.Attribute, error)

	// AllExist reports whether every id references an existing row.
	AllExist(ctx context.Context, ids []int64) (bool, error)
}
