package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type CommentHandler struct {
	Blog   *application.BlogService
	Logger *logrus.Logger
}

func NewCommentHandler(blog *application.BlogService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Blog: blog, Logger: logger}
}

type updateCommentRequest struct {
	Body *string `json:"body"`
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cm, err := h.Blog.GetComment(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComment(cm))
}

// Update handles PUT /comments/{id}; author only.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	cm, err := h.Blog.UpdateComment(c.Request.Context(), actor, id, entity.CommentPatch{Body: req.Body})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComment(cm))
}

// Reply handles POST /comments/{id}: a nested reply to the comment.
func (h *CommentHandler) Reply(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req commentBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	cm, err := h.Blog.ReplyToComment(c.Request.Context(), actor, id, req.Body)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComment(cm))
}

// Delete handles DELETE /comments/{id}; author only, cascades to replies.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor := middleware.CurrentUser(c)
	if err := h.Blog.DeleteComment(c.Request.Context(), actor, id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
