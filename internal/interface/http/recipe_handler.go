package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/application"
	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/infrastructure/storage"
	"github.com/oksasatya/recipe-share-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-share-api/pkg/response"
	"github.com/oksasatya/recipe-share-api/pkg/validation"
)

type RecipeHandler struct {
	Svc    *application.RecipeService
	Media  *storage.MediaStore
	Logger *logrus.Logger
}

func NewRecipeHandler(svc *application.RecipeService, media *storage.MediaStore, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{Svc: svc, Media: media, Logger: logger}
}

type createRecipeRequest struct {
	Title       string        `json:"title" binding:"required,max=255"`
	Price       *entity.Price `json:"price" binding:"required"`
	TimeMinutes *int          `json:"time_minutes" binding:"required"`
	Instruction string        `json:"instruction"`
	Tags        []int64       `json:"tags"`
	Ingredients []int64       `json:"ingredients"`

	// The image field is accepted but always discarded; uploads go through
	// the dedicated upload-image endpoint.
	Image json.RawMessage `json:"image"`
}

type replaceRecipeRequest struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Price       *entity.Price   `json:"price" binding:"required"`
	TimeMinutes *int            `json:"time_minutes" binding:"required"`
	Instruction *string         `json:"instruction"`
	Tags        *[]int64        `json:"tags"`
	Ingredients *[]int64        `json:"ingredients"`
	Image       json.RawMessage `json:"image"`
}

type patchRecipeRequest struct {
	Title       *string         `json:"title" binding:"omitempty,max=255"`
	Price       *entity.Price   `json:"price"`
	TimeMinutes *int            `json:"time_minutes"`
	Instruction *string         `json:"instruction"`
	Tags        *[]int64        `json:"tags"`
	Ingredients *[]int64        `json:"ingredients"`
	Image       json.RawMessage `json:"image"`
}

// recipeListBody serializes associations as id arrays.
type recipeListBody struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Instruction string       `json:"instruction"`
	Price       entity.Price `json:"price"`
	TimeMinutes int          `json:"time_minutes"`
	Image       *string      `json:"image"`
	Tags        []int64      `json:"tags"`
	Ingredients []int64      `json:"ingredients"`
}

// recipeDetailBody expands associations to {id, name} objects.
type recipeDetailBody struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Instruction string          `json:"instruction"`
	Price       entity.Price    `json:"price"`
	TimeMinutes int             `json:"time_minutes"`
	Image       *string         `json:"image"`
	Tags        []attributeBody `json:"tags"`
	Ingredients []attributeBody `json:"ingredients"`
}

func (h *RecipeHandler) imageURL(rel string) *string {
	if rel == "" {
		return nil
	}
	u := h.Media.URLFor(rel)
	return &u
}

func (h *RecipeHandler) toListBody(r *entity.Recipe) recipeListBody {
	return recipeListBody{
		ID:          r.ID,
		Title:       r.Title,
		Instruction: r.Instruction,
		Price:       r.Price,
		TimeMinutes: r.TimeMinutes,
		Image:       h.imageURL(r.Image),
		Tags:        r.TagIDs(),
		Ingredients: r.IngredientIDs(),
	}
}

func (h *RecipeHandler) toDetailBody(r *entity.Recipe) recipeDetailBody {
	return recipeDetailBody{
		ID:          r.ID,
		Title:       r.Title,
		Instruction: r.Instruction,
		Price:       r.Price,
		TimeMinutes: r.TimeMinutes,
		Image:       h.imageURL(r.Image),
		Tags:        attributesToBody(r.Tags),
		Ingredients: attributesToBody(r.Ingredients),
	}
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSuffix(c.Param("id"), "/"), 10, 64)
	if err != nil || id <= 0 {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// List GET /recipe/recipes/?tags=1,2&ingredients=3
func (h *RecipeHandler) List(c *gin.Context) {
	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		response.Fields(c, http.StatusBadRequest, map[string]string{"tags": "must be a comma-separated list of integers"})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		response.Fields(c, http.StatusBadRequest, map[string]string{"ingredients": "must be a comma-separated list of integers"})
		return
	}

	recipes, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), tagIDs, ingredientIDs)
	if err != nil {
		h.Logger.WithError(err).Error("list recipes failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	out := make([]recipeListBody, 0, len(recipes))
	for i := range recipes {
		out = append(out, h.toListBody(&recipes[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create POST /recipe/recipes/
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, bindDetails(err))
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), application.CreateRecipeInput{
		Title:         req.Title,
		Price:         *req.Price,
		TimeMinutes:   *req.TimeMinutes,
		Instruction:   req.Instruction,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toListBody(rec))
}

// Get GET /recipe/recipes/:id/
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	rec, err := h.Svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toDetailBody(rec))
}

// Replace PUT /recipe/recipes/:id/ — omitted tags/ingredients clear the
// associations, matching replace-whole-resource semantics.
func (h *RecipeHandler) Replace(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req replaceRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, bindDetails(err))
		return
	}
	instruction := ""
	if req.Instruction != nil {
		instruction = *req.Instruction
	}
	rec, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, application.UpdateRecipeInput{
		Title:         &req.Title,
		Price:         req.Price,
		TimeMinutes:   req.TimeMinutes,
		Instruction:   &instruction,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
		Full:          true,
	})
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toListBody(rec))
}

// Patch PATCH /recipe/recipes/:id/ — only supplied fields change.
func (h *RecipeHandler) Patch(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req patchRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, bindDetails(err))
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), id, application.UpdateRecipeInput{
		Title:         req.Title,
		Price:         req.Price,
		TimeMinutes:   req.TimeMinutes,
		Instruction:   req.Instruction,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toListBody(rec))
}

// Delete DELETE /recipe/recipes/:id/
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.writeRecipeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage POST /recipe/recipes/:id/upload-image/ (multipart field "image")
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Fields(c, http.StatusBadRequest, map[string]string{"image": "No file was submitted."})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fields(c, http.StatusBadRequest, map[string]string{"image": "No file was submitted."})
		return
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		h.Logger.WithError(err).Error("reading upload failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	rec, err := h.Svc.UploadImage(c.Request.Context(), middleware.UserID(c), id, data, fh.Filename)
	if err != nil {
		if errors.Is(err, application.ErrNotAnImage) {
			response.Fields(c, http.StatusBadRequest, map[string]string{
				"image": "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
			})
			return
		}
		h.writeRecipeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "image": h.imageURL(rec.Image)})
}

func (h *RecipeHandler) writeRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrRecipeNotFound):
		response.Detail(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, application.ErrBadAttributeIDs):
		response.Detail(c, http.StatusBadRequest, "invalid tag or ingredient id")
	default:
		h.Logger.WithError(err).Error("recipe operation failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindDetails augments the generic binding-error mapping with the price
// domain errors, which surface as plain errors out of the JSON decoder.
func bindDetails(err error) map[string]string {
	if errors.Is(err, entity.ErrPriceFormat) || errors.Is(err, entity.ErrPriceRange) {
		return map[string]string{"price": "must be a decimal with at most 5 digits and 2 decimal places"}
	}
	return validation.ToDetails(err)
}
