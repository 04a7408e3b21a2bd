package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

type TokenHandler struct {
	Creds  *application.CredentialService
	Logger *logrus.Logger
}

func NewTokenHandler(creds *application.CredentialService, logger *logrus.Logger) *TokenHandler {
	return &TokenHandler{Creds: creds, Logger: logger}
}

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Create handles POST /token. Any failure, including a missing or malformed
// body, reads as the contract's 403: the endpoint never reveals whether the
// username exists.
func (h *TokenHandler) Create(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Forbidden(c)
		return
	}
	token, _, err := h.Creds.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Forbidden(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
