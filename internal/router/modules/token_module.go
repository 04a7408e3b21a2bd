package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/container"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
)

// TokenModule wires the credential endpoint.
// Public: POST /token (rate limited per IP; it is a password oracle)
type TokenModule struct {
	Handler *handlers.TokenHandler
}

func NewToken(h *handlers.TokenHandler) *TokenModule {
	return &TokenModule{Handler: h}
}

func (m *TokenModule) Register(rg *gin.RouterGroup) {
	limit := 10
	if cfg := container.GetConfig(); cfg != nil {
		limit = cfg.RateLimitTokenMax
	}
	limiter := middleware.RateLimit(container.GetRedis(), limit, time.Minute, middleware.KeyByIP())
	rg.POST("/token", limiter, m.Handler.Create)
}
