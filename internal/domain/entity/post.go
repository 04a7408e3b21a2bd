package entity

import "unicode/utf8"

const (
	// Validation floors inherited from the API contract: titles need more
	// than 5 characters, bodies more than 10.
	postTitleMin = 6
	postBodyMin  = 11
)

// Post is a top-level article owned by a user.
type Post struct {
	Entity
	Title  string
	Body   string
	Author string // owning username, fixed at creation

	// AuthorEmail is populated by lookups that join the owner, for building
	// the nested user representation. Not a persisted post column.
	AuthorEmail string
}

// NewPost validates and builds a post owned by author.
func NewPost(title, body, author string) (*Post, error) {
	if utf8.RuneCountInString(title) < postTitleMin {
		return nil, &ValidationError{Field: "title", Message: "must be longer than 5 characters"}
	}
	if utf8.RuneCountInString(body) < postBodyMin {
		return nil, &ValidationError{Field: "body", Message: "must be longer than 10 characters"}
	}
	if author == "" {
		return nil, &ValidationError{Field: "user", Message: "is required"}
	}
	return &Post{Entity: Entity{Kind: KindPost}, Title: title, Body: body, Author: author}, nil
}

// Owner returns the owning username.
func (p *Post) Owner() string { return p.Author }

// PostPatch carries the optional fields of a post update; only present
// fields are applied.
type PostPatch struct {
	Title *string
	Body  *string
}

// Apply validates and applies the present fields.
func (p PostPatch) Apply(post *Post) error {
	if p.Title != nil {
		if utf8.RuneCountInString(*p.Title) < postTitleMin {
			return &ValidationError{Field: "title", Message: "must be longer than 5 characters"}
		}
		post.Title = *p.Title
	}
	if p.Body != nil {
		if utf8.RuneCountInString(*p.Body) < postBodyMin {
			return &ValidationError{Field: "body", Message: "must be longer than 10 characters"}
		}
		post.Body = *p.Body
	}
	return nil
}
