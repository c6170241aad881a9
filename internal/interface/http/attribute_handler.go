package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/application"
	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-share-api/pkg/response"
	"github.com/oksasatya/recipe-share-api/pkg/validation"
)

// AttributeHandler serves tags and ingredients; one instance per kind.
type AttributeHandler struct {
	Svc    *application.AttributeService
	Logger *logrus.Logger
}

func NewAttributeHandler(svc *application.AttributeService, logger *logrus.Logger) *AttributeHandler {
	return &AttributeHandler{Svc: svc, Logger: logger}
}

type createAttributeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type attributeBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func attributesToBody(attrs []entity.Attribute) []attributeBody {
	out := make([]attributeBody, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attributeBody{ID: a.ID, Name: a.Name})
	}
	return out
}

// List GET /recipe/tags/ and /recipe/ingredients/, ?assigned_only=0|1
func (h *AttributeHandler) List(c *gin.Context) {
	assignedOnly := false
	if raw := c.Query("assigned_only"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Fields(c, http.StatusBadRequest, map[string]string{"assigned_only": "must be an integer"})
			return
		}
		assignedOnly = n != 0
	}
	attrs, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), assignedOnly)
	if err != nil {
		h.Logger.WithError(err).Error("list attributes failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, attributesToBody(attrs))
}

// Create POST /recipe/tags/ and /recipe/ingredients/
func (h *AttributeHandler) Create(c *gin.Context) {
	var req createAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		if errors.Is(err, application.ErrNameTaken) {
			response.Fields(c, http.StatusBadRequest, map[string]string{"name": "this name already exists"})
			return
		}
		h.Logger.WithError(err).Error("create attribute failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusCreated, attributeBody{ID: a.ID, Name: a.Name})
}
