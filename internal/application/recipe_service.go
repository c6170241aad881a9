package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-share-api/internal/domain/repository"
	"github.com/oksasatya/recipe-share-api/internal/infrastructure/storage"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrBadAttributeIDs = errors.New("tag or ingredient id does not exist")
	ErrNotAnImage      = errors.New("upload is not a valid image")
)

type RecipeService struct {
	Recipes     repo.RecipeRepository
	Tags        repo.AttributeRepository
	Ingredients repo.AttributeRepository
	Media       *storage.MediaStore
	Logger      *logrus.Logger
}

func NewRecipeService(recipes repo.RecipeRepository, tags, ingredients repo.AttributeRepository, media *storage.MediaStore, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Recipes: recipes, Tags: tags, Ingredients: ingredients, Media: media, Logger: logger}
}

type CreateRecipeInput struct {
	Title         string
	Price         entity.Price
	TimeMinutes   int
	Instruction   string
	TagIDs        []int64
	IngredientIDs []int64
}

func (s *RecipeService) Create(ctx context.Context, userID int64, in CreateRecipeInput) (*entity.Recipe, error) {
	if err := s.checkAttributeIDs(ctx, in.TagIDs, in.IngredientIDs); err != nil {
		return nil, err
	}
	rec := &entity.Recipe{
		Title:       in.Title,
		Price:       in.Price,
		Instruction: in.Instruction,
		TimeMinutes: in.TimeMinutes,
		UserID:      userID,
	}
	if err := s.Recipes.Create(ctx, rec, in.TagIDs, in.IngredientIDs); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecipeService) List(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]entity.Recipe, error) {
	return s.Recipes.List(ctx, userID, tagIDs, ingredientIDs)
}

// Get returns the recipe only to its owner; anyone else sees not-found.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID int64) (*entity.Recipe, error) {
	rec, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil || rec.UserID != userID {
		return nil, ErrRecipeNotFound
	}
	return rec, nil
}

type UpdateRecipeInput struct {
	Title         *string
	Price         *entity.Price
	TimeMinutes   *int
	Instruction   *string
	TagIDs        *[]int64
	IngredientIDs *[]int64

	// Full marks PUT semantics: associations absent from the payload are
	// cleared instead of left untouched.
	Full bool
}

func (s *RecipeService) Update(ctx context.Context, userID, recipeID int64, in UpdateRecipeInput) (*entity.Recipe, error) {
	rec, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.Price != nil {
		rec.Price = *in.Price
	}
	if in.TimeMinutes != nil {
		rec.TimeMinutes = *in.TimeMinutes
	}
	if in.Instruction != nil {
		rec.Instruction = *in.Instruction
	}

	tagIDs := in.TagIDs
	ingredientIDs := in.IngredientIDs
	if in.Full {
		empty := []int64{}
		if tagIDs == nil {
			tagIDs = &empty
		}
		if ingredientIDs == nil {
			ingredientIDs = &empty
		}
	}
	var checkTags, checkIngredients []int64
	if tagIDs != nil {
		checkTags = *tagIDs
	}
	if ingredientIDs != nil {
		checkIngredients = *ingredientIDs
	}
	if err := s.checkAttributeIDs(ctx, checkTags, checkIngredients); err != nil {
		return nil, err
	}

	if err := s.Recipes.Update(ctx, rec); err != nil {
		return nil, err
	}
	if tagIDs != nil {
		if err := s.Recipes.SetTags(ctx, recipeID, *tagIDs); err != nil {
			return nil, err
		}
	}
	if ingredientIDs != nil {
		if err := s.Recipes.SetIngredients(ctx, recipeID, *ingredientIDs); err != nil {
			return nil, err
		}
	}
	return s.Recipes.GetByID(ctx, recipeID)
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.Get(ctx, userID, recipeID); err != nil {
		return err
	}
	return s.Recipes.Delete(ctx, recipeID)
}

// UploadImage stores the picture under a fresh generated name, thumbnails it
// when oversized and replaces the recipe's previous image file. A payload
// that does not decode leaves the stored image untouched.
func (s *RecipeService) UploadImage(ctx context.Context, userID, recipeID int64, data []byte, filename string) (*entity.Recipe, error) {
	rec, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	rel, err := s.Media.SaveRecipeImage(data, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) {
			return nil, ErrNotAnImage
		}
		return nil, err
	}
	if err := s.Recipes.UpdateImage(ctx, recipeID, rel); err != nil {
		_ = s.Media.Remove(rel)
		return nil, err
	}

	if rec.Image != "" {
		if err := s.Media.Remove(rec.Image); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("path", rec.Image).Warn("removing replaced image failed")
		}
	}
	rec.Image = rel
	return rec, nil
}

func (s *RecipeService) checkAttributeIDs(ctx context.Context, tagIDs, ingredientIDs []int64) error {
	if ok, err := s.Tags.AllExist(ctx, tagIDs); err != nil {
		return err
	} else if !ok {
		return ErrBadAttributeIDs
	}
	if ok, err := s.Ingredients.AllExist(ctx, ingredientIDs); err != nil {
		return err
	} else if !ok {
		return ErrBadAttributeIDs
	}
	return nil
}
