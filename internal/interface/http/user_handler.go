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

type UserHandler struct {
	Users  *application.UserService
	Blog   *application.BlogService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, blog *application.BlogService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Blog: blog, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUser(u))
}

// Get handles GET /users/{username}.
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUser(u))
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	us, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUsers(us))
}

// Update handles PUT /users/{username}; self only.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	patch := entity.UserPatch{Email: req.Email, Password: req.Password}
	u, err := h.Users.Update(c.Request.Context(), actor, c.Param("username"), patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUser(u))
}

// Delete handles DELETE /users/{username}; self only, cascades to owned
// posts and comments.
func (h *UserHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Users.Delete(c.Request.Context(), actor, c.Param("username")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Posts handles GET /users/{username}/posts.
func (h *UserHandler) Posts(c *gin.Context) {
	ps, err := h.Blog.ListPostsByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPosts(ps))
}

// CreatePost handles POST /users/{username}/posts. The path user must be the
// authenticated caller; a post can only ever be created under its author.
func (h *UserHandler) CreatePost(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil || actor.Username != c.Param("username") {
		response.Forbidden(c)
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Blog.CreatePost(c.Request.Context(), actor, req.Title, req.Body); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Comments handles GET /users/{username}/comments.
func (h *UserHandler) Comments(c *gin.Context) {
	cs, err := h.Blog.ListCommentsByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComments(cs))
}
