package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

// PostModule wires post HTTP handlers.
// Public: GET /posts/{id}, GET /posts/{id}/comments
// Protected: GET /posts, POST /posts, PUT /posts/{id}, DELETE /posts/{id},
// POST /posts/{id}/comments
type PostModule struct {
	Handler *handlers.PostHandler
	Guard   gin.HandlerFunc
}

func NewPost(h *handlers.PostHandler, guard gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Guard: guard}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts/:id", m.Handler.Get)
	rg.GET("/posts/:id/comments", m.Handler.Comments)

	rg.GET("/posts", m.Guard, m.Handler.ListMine)
	rg.POST("/posts", m.Guard, m.Handler.Create)
	rg.PUT("/posts/:id", m.Guard, m.Handler.Update)
	rg.DELETE("/posts/:id", m.Guard, m.Handler.Delete)
	rg.POST("/posts/:id/comments", m.Guard, m.Handler.CreateComment)
}
