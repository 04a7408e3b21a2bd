package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	pginfra "github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/internal/router/modules"
)

type Deps struct {
	Creds *application.CredentialService
	Users *application.UserService
	Blog  *application.BlogService
	Guard gin.HandlerFunc
}

func buildDeps() Deps {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	creds := application.NewCredentialService(userRepo, container.GetTokens(), logger)
	users := application.NewUserService(userRepo, logger)
	blog := application.NewBlogService(postRepo, commentRepo, userRepo, logger)

	guard := middleware.RequireUser(func(c *gin.Context, token string) (*entity.User, error) {
		return creds.Resolve(c.Request.Context(), token)
	})

	return Deps{Creds: creds, Users: users, Blog: blog, Guard: guard}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Add(modules.NewToken(handlers.NewTokenHandler(deps.Creds, logger)))
	r.Add(modules.NewUser(handlers.NewUserHandler(deps.Users, deps.Blog, logger), deps.Guard))
	r.Add(modules.NewPost(handlers.NewPostHandler(deps.Blog, logger), deps.Guard))
	r.Add(modules.NewComment(handlers.NewCommentHandler(deps.Blog, logger), deps.Guard))
}
