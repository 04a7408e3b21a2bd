package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialService authenticates users and turns identities into tokens and
// back. Token resolution re-checks the embedded password-hash fingerprint
// against the stored hash, so tokens issued before a password change stop
// resolving.
type CredentialService struct {
	Users  repository.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewCredentialService(users repository.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger) *CredentialService {
	return &CredentialService{Users: users, Tokens: tokens, Logger: logger}
}

// Login verifies username/password and issues a token with the default TTL.
func (s *CredentialService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	u, err := s.Users.GetByUsername(username)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithField("username", username).Debug("password mismatch on login")
		}
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.Tokens.Issue(u.Username, u.Email, u.PasswordHash)
}

// Resolve validates a token and returns the current user it identifies.
func (s *CredentialService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.Tokens.Resolve(token)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(claims.Username)
	if err != nil || u == nil {
		return nil, helpers.ErrTokenInvalid
	}
	if helpers.Fingerprint(u.PasswordHash) != claims.PasswordFingerprint {
		// Password changed after issue; the snapshot no longer matches.
		return nil, helpers.ErrTokenInvalid
	}
	return u, nil
}
