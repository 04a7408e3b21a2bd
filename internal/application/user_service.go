package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// UserService covers registration, profile updates and account deletion.
type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// Register validates input, hashes the password and stores the new user.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	u, err := entity.NewUser(username, email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &entity.ValidationError{Field: "password", Message: "must not be empty"}
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("username", u.Username).Info("user registered")
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*entity.User, error) {
	return s.Users.GetByUsername(username)
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List()
}

// Update applies a partial patch to the actor's own account. Present password
// fields are re-hashed, which also invalidates outstanding tokens.
func (s *UserService) Update(ctx context.Context, actor *entity.User, username string, patch entity.UserPatch) (*entity.User, error) {
	if err := requireSelf(actor, username); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(u); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hash, err := helpers.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.Users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the actor's own account. Owned posts and comments go with
// it, and child comments of those entities cascade too.
func (s *UserService) Delete(ctx context.Context, actor *entity.User, username string) error {
	if err := requireSelf(actor, username); err != nil {
		return err
	}
	if err := s.Users.Delete(username); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("user deleted with owned entities")
	}
	return nil
}
