package repository

import (
	"context"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// The following relation is asymmetric: Following and Followers are two
// independent views over the same join table.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error

	Follow(ctx context.Context, userID, followedID int64) error
	Unfollow(ctx context.Context, userID, followedID int64) error
	Following(ctx context.Context, userID int64) ([]entity.User, error)
	Followers(ctx context.Context, userID int64) ([]entity.User, error)
}
