package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

// writeError maps service and storage failures onto the API's status
// contract. Anything unrecognized is a 500 with no internals leaked.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, "invalid field value", map[string]string{ve.Field: ve.Message})
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Conflict(c, "email already registered")
	case errors.Is(err, repository.ErrDuplicateUsername):
		response.Conflict(c, "username already taken")
	case errors.Is(err, application.ErrForbidden),
		errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, helpers.ErrTokenExpired),
		errors.Is(err, helpers.ErrTokenInvalid):
		response.Forbidden(c)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the numeric id path parameter; a non-numeric id can never
// name an entity, so it reads as 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, false
	}
	return id, true
}
