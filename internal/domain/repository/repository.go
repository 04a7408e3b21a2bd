package repository

import (
	"errors"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// Storage-level failures shared by every implementation. Handlers map these
// to HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

// UserRepository defines user persistence. Delete cascades to every post and
// comment the user owns, and from those to their child comments.
type UserRepository interface {
	Create(u *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(u *entity.User) error
	Delete(username string) error
}

// PostRepository defines post persistence over the shared entity id space.
type PostRepository interface {
	Create(p *entity.Post) error
	GetByID(id int64) (*entity.Post, error)
	Update(p *entity.Post) error
	Delete(id int64) error
	ListByUser(username string) ([]*entity.Post, error)
}

// CommentRepository defines comment persistence. Create fails with
// ErrNotFound when the parent entity does not exist.
type CommentRepository interface {
	Create(c *entity.Comment) error
	GetByID(id int64) (*entity.Comment, error)
	Update(c *entity.Comment) error
	Delete(id int64) error
	ListByUser(username string) ([]*entity.Comment, error)
	ListByParent(parentID int64) ([]*entity.Comment, error)
}
