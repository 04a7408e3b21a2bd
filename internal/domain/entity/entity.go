package entity

import "time"

// Kind tags the two concrete entity variants. Posts and comments share one
// monotonic id space so a comment can attach to either.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Entity holds the fields common to every ownable content record.
// UpdatedAt is refreshed on every mutation.
type Entity struct {
	ID        int64
	Kind      Kind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidationError reports a bad field value at the construction or update
// boundary, before anything touches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}
