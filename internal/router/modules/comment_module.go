package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

// CommentModule wires comment HTTP handlers.
// Public: GET /comments/{id}
// Protected: PUT /comments/{id}, POST /comments/{id}, DELETE /comments/{id}
type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   gin.HandlerFunc
}

func NewComment(h *handlers.CommentHandler, guard gin.HandlerFunc) *CommentModule {
	return &CommentModule{Handler: h, Guard: guard}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/comments/:id", m.Handler.Get)

	rg.PUT("/comments/:id", m.Guard, m.Handler.Update)
	rg.POST("/comments/:id", m.Guard, m.Handler.Reply)
	rg.DELETE("/comments/:id", m.Guard, m.Handler.Delete)
}
