package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenManager issues and validates signed, expiring auth tokens.
// Tokens embed the holder's identity plus a fingerprint of the password hash
// current at issue time, so a password change invalidates every token issued
// before it.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{Secret: []byte(secret), TTL: ttl}
}

type TokenClaims struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	PasswordFingerprint string `json:"pwf"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given identity with the manager's default TTL.
func (m *TokenManager) Issue(username, email, passwordHash string) (string, time.Time, error) {
	return m.IssueWithTTL(username, email, passwordHash, m.TTL)
}

// IssueWithTTL signs a token with an explicit TTL. A zero or negative TTL
// produces a token that is already expired.
func (m *TokenManager) IssueWithTTL(username, email, passwordHash string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &TokenClaims{
		Username:            username,
		Email:               email,
		PasswordFingerprint: Fingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Resolve verifies signature and expiry and returns the embedded claims.
// Expired tokens fail with ErrTokenExpired; anything else malformed or
// tampered fails with ErrTokenInvalid.
func (m *TokenManager) Resolve(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Fingerprint derives a short identifier for a password hash. Embedding the
// bcrypt hash itself would hand it to anyone holding a token, since tokens
// are signed, not encrypted.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
