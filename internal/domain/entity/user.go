package entity

import (
	"net/mail"
	"strings"
	"time"
)

// User is the aggregate root for the user domain.
// Username is the primary identity: ownership of posts and comments and the
// subject of auth tokens are both keyed by it, so it never changes after
// registration. Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser validates registration input and returns a User without a password
// hash; hashing belongs to the credential layer.
func NewUser(username, email string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return &User{Username: username, Email: email}, nil
}

// UserPatch carries the optional fields of a user update. Username is
// deliberately absent: renaming the identity key would orphan outstanding
// tokens and every ownership reference.
type UserPatch struct {
	Email    *string
	Password *string
}

// Apply validates and applies the present fields. The password field is
// validated here but hashed by the caller.
func (p UserPatch) Apply(u *User) error {
	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return err
		}
		u.Email = *p.Email
	}
	if p.Password != nil && *p.Password == "" {
		return &ValidationError{Field: "password", Message: "must not be empty"}
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "must not be empty"}
	}
	if strings.Contains(username, " ") {
		return &ValidationError{Field: "username", Message: "must not contain spaces"}
	}
	return nil
}

// ValidateEmail checks the address format (RFC 5322 via net/mail).
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "must be a valid email"}
	}
	return nil
}
