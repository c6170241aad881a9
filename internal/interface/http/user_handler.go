package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-share-api/internal/application"
	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-share-api/pkg/response"
	"github.com/oksasatya/recipe-share-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,pwd"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

type replaceUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

type userBody struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userToBody(u *entity.User) userBody {
	return userBody{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Create POST /users/create/
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Fields(c, http.StatusBadRequest, map[string]string{"email": "user with this email already exists"})
		case errors.Is(err, application.ErrEmailRequired):
			response.Fields(c, http.StatusBadRequest, map[string]string{"email": "is required"})
		default:
			h.Logger.WithError(err).Error("create user failed")
			response.Detail(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	c.JSON(http.StatusCreated, userToBody(u))
}

// Token POST /users/token/
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	_, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Detail(c, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": pair.AccessToken, "refresh": pair.RefreshToken})
}

// Refresh POST /users/token/refresh/
func (h *UserHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	access, err := h.Svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		response.DetailCode(c, http.StatusUnauthorized, "Token is invalid or expired", "token_not_valid")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Me GET /users/me/
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return
	}
	c.JSON(http.StatusOK, userToBody(u))
}

// UpdateMe PATCH /users/me/ (partial)
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	h.applyUpdate(c, application.UpdateProfileInput{Email: req.Email, Name: req.Name, Password: req.Password})
}

// ReplaceMe PUT /users/me/ (full update: email and name required)
func (h *UserHandler) ReplaceMe(c *gin.Context) {
	var req replaceUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	h.applyUpdate(c, application.UpdateProfileInput{Email: &req.Email, Name: &req.Name, Password: req.Password})
}

func (h *UserHandler) applyUpdate(c *gin.Context, in application.UpdateProfileInput) {
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Fields(c, http.StatusBadRequest, map[string]string{"email": "user with this email already exists"})
		case errors.Is(err, application.ErrUserNotFound):
			response.Detail(c, http.StatusNotFound, "Not found.")
		default:
			h.Logger.WithError(err).Error("update profile failed")
			response.Detail(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, userToBody(u))
}

// DeleteMe DELETE /users/me/
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.Svc.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Detail(c, http.StatusNotFound, "Not found.")
			return
		}
		h.Logger.WithError(err).Error("delete account failed")
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}
