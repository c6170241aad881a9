package router

import (
	"github.com/oksasatya/recipe-share-api/internal/application"
	"github.com/oksasatya/recipe-share-api/internal/container"
	pginfra "github.com/oksasatya/recipe-share-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/recipe-share-api/internal/interface/http"
	"github.com/oksasatya/recipe-share-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	media := container.GetMedia()

	userRepo := pginfra.NewUserRepository(pool)
	userSvc := application.NewUserService(userRepo, jwt, logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)

	tagRepo := pginfra.NewTagRepository(pool)
	ingredientRepo := pginfra.NewIngredientRepository(pool)
	tagHandler := handlers.NewAttributeHandler(application.NewAttributeService(tagRepo, logger), logger)
	ingredientHandler := handlers.NewAttributeHandler(application.NewAttributeService(ingredientRepo, logger), logger)

	recipeRepo := pginfra.NewRecipeRepository(pool)
	recipeSvc := application.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, media, logger)
	recipeHandler := handlers.NewRecipeHandler(recipeSvc, media, logger)

	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewRecipeModule(tagHandler, ingredientHandler, recipeHandler, jwt))
}
