package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/recipe-share-api/internal/interface/http"
	"github.com/oksasatya/recipe-share-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-share-api/pkg/helpers"
)

// RecipeModule wires tags, ingredients and recipes under /recipe.
// Every route requires a bearer token; handlers scope queries to the
// authenticated owner.
type RecipeModule struct {
	Tags        *handlers.AttributeHandler
	Ingredients *handlers.AttributeHandler
	Recipes     *handlers.RecipeHandler
	JWT         *helpers.JWTManager
}

func NewRecipeModule(tags, ingredients *handlers.AttributeHandler, recipes *handlers.RecipeHandler, jwt *helpers.JWTManager) *RecipeModule {
	return &RecipeModule{Tags: tags, Ingredients: ingredients, Recipes: recipes, JWT: jwt}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/recipe")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/tags/", m.Tags.List)
		auth.POST("/tags/", m.Tags.Create)

		auth.GET("/ingredients/", m.Ingredients.List)
		auth.POST("/ingredients/", m.Ingredients.Create)

		auth.GET("/recipes/", m.Recipes.List)
		auth.POST("/recipes/", m.Recipes.Create)
		auth.GET("/recipes/:id/", m.Recipes.Get)
		auth.PUT("/recipes/:id/", m.Recipes.Replace)
		auth.PATCH("/recipes/:id/", m.Recipes.Patch)
		auth.DELETE("/recipes/:id/", m.Recipes.Delete)
		auth.POST("/recipes/:id/upload-image/", m.Recipes.UploadImage)
	}
}
