package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-share-api/internal/domain/repository"
)

var ErrNameTaken = errors.New("name already in use")

// AttributeService handles tags and ingredients; one instance per kind.
type AttributeService struct {
	Repo   repo.AttributeRepository
	Logger *logrus.Logger
}

func NewAttributeService(r repo.AttributeRepository, logger *logrus.Logger) *AttributeService {
	return &AttributeService{Repo: r, Logger: logger}
}

func (s *AttributeService) Create(ctx context.Context, userID int64, name string) (*entity.Attribute, error) {
	a := &entity.Attribute{Name: name, UserID: userID}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return a, nil
}

func (s *AttributeService) List(ctx context.Context, userID int64, assignedOnly bool) ([]entity.Attribute, error) {
	return s.Repo.List(ctx, userID, assignedOnly)
}
