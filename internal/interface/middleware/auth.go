package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

const CtxUserKey = "currentUser"

// RequireUser guards protected routes. The client sends the token as
// `Authorization: Basic <base64(token)>`; anything missing, malformed,
// expired or tampered aborts with the contract's single 403.
func RequireUser(resolve func(c *gin.Context, token string) (*entity.User, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Forbidden(c)
			return
		}
		encoded := strings.TrimPrefix(header, "Basic ")
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			response.Forbidden(c)
			return
		}
		u, err := resolve(c, string(raw))
		if err != nil || u == nil {
			response.Forbidden(c)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireUser, or nil on
// public routes.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
