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

type PostHandler struct {
	Blog   *application.BlogService
	Logger *logrus.Logger
}

func NewPostHandler(blog *application.BlogService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Blog: blog, Logger: logger}
}

type createPostRequest struct {
	Title string `json:"title" binding:"posttitle"`
	Body  string `json:"body" binding:"postbody"`
}

type updatePostRequest struct {
	Title *string `json:"title" binding:"omitempty,min=6"`
	Body  *string `json:"body" binding:"omitempty,min=11"`
}

type commentBodyRequest struct {
	Body string `json:"body" binding:"required"`
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Blog.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPost(p))
}

// Update handles PUT /posts/{id}; author only.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	patch := entity.PostPatch{Title: req.Title, Body: req.Body}
	if _, err := h.Blog.UpdatePost(c.Request.Context(), actor, id, patch); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /posts/{id}; author only, cascades to the comment
// thread underneath.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor := middleware.CurrentUser(c)
	if err := h.Blog.DeletePost(c.Request.Context(), actor, id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine handles GET /posts: the authenticated caller's posts.
func (h *PostHandler) ListMine(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	ps, err := h.Blog.ListPostsByUser(c.Request.Context(), actor.Username)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPosts(ps))
}

// Create handles POST /posts: a new post owned by the caller.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	p, err := h.Blog.CreatePost(c.Request.Context(), actor, req.Title, req.Body)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPost(p))
}

// Comments handles GET /posts/{id}/comments: direct replies to the post.
func (h *PostHandler) Comments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cs, err := h.Blog.ListCommentsOfPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComments(cs))
}

// CreateComment handles POST /posts/{id}/comments: a reply to the post.
func (h *PostHandler) CreateComment(c *gin.Context) {
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
	if _, err := h.Blog.ReplyToPost(c.Request.Context(), actor, id, req.Body); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
