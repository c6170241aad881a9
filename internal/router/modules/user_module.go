package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/recipe-share-api/internal/container"
	handlers "github.com/oksasatya/recipe-share-api/internal/interface/http"
	"github.com/oksasatya/recipe-share-api/internal/interface/middleware"
	"github.com/oksasatya/recipe-share-api/pkg/helpers"
)

// UserModule wires the user endpoints.
// Public: POST /users/create/, /users/token/, /users/token/refresh/
// Protected: GET|PUT|PATCH|DELETE /users/me/
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	if !container.GetConfig().RateLimitEnabled {
		rdb = nil
	}
	allowLocal := middleware.AllowPrivateIP()
	createLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), allowLocal)
	tokenLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), allowLocal)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), allowLocal)

	rg.POST("/users/create/", createLimiter, m.Handler.Create)
	rg.POST("/users/token/", tokenLimiter, m.Handler.Token)
	rg.POST("/users/token/refresh/", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me/", m.Handler.Me)
		auth.PUT("/me/", m.Handler.ReplaceMe)
		auth.PATCH("/me/", m.Handler.UpdateMe)
		auth.DELETE("/me/", m.Handler.DeleteMe)
	}
}
