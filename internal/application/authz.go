package application

import (
	"errors"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// ErrForbidden covers every authorization failure: missing or bad token on a
// protected operation as well as acting on someone else's resource. The API
// reports both as the same 403, so the service layer does not split them.
var ErrForbidden = errors.New("access forbidden")

// Owned is anything with an owning username (posts and comments).
type Owned interface {
	Owner() string
}

// IsAuthor reports whether u owns e. Identity is by username.
func IsAuthor(u *entity.User, e Owned) bool {
	return u != nil && u.Username == e.Owner()
}

// requireAuthor gates owner-only mutations.
func requireAuthor(u *entity.User, e Owned) error {
	if !IsAuthor(u, e) {
		return ErrForbidden
	}
	return nil
}

// requireSelf gates user self-service operations.
func requireSelf(u *entity.User, username string) error {
	if u == nil || u.Username != username {
		return ErrForbidden
	}
	return nil
}
