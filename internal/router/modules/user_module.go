package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/container"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
)

// UserModule wires user HTTP handlers and the auth guard into routes.
// Public: POST /users (rate limited), GET /users, GET /users/{u},
// GET /users/{u}/posts, GET /users/{u}/comments
// Protected: PUT /users/{u}, DELETE /users/{u}, POST /users/{u}/posts
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   gin.HandlerFunc
}

func NewUser(h *handlers.UserHandler, guard gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	limit := 20
	if cfg := container.GetConfig(); cfg != nil {
		limit = cfg.RateLimitSignupMax
	}
	registerLimiter := middleware.RateLimit(container.GetRedis(), limit, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:username", m.Handler.Get)
	rg.GET("/users/:username/posts", m.Handler.Posts)
	rg.GET("/users/:username/comments", m.Handler.Comments)

	rg.PUT("/users/:username", m.Guard, m.Handler.Update)
	rg.DELETE("/users/:username", m.Guard, m.Handler.Delete)
	rg.POST("/users/:username/posts", m.Guard, m.Handler.CreatePost)
}
