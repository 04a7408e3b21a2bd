package entity

// Comment is a reply attached to any entity, post or comment, which is what
// makes arbitrary-depth threads possible.
type Comment struct {
	Entity
	Body     string
	Author   string // owning username, fixed at creation
	ParentID int64  // id of the parent post or comment

	// AuthorEmail is populated by lookups that join the owner; see Post.
	AuthorEmail string
}

// NewComment validates and builds a comment owned by author under parentID.
// Parent existence is checked by the store at creation time.
func NewComment(body, author string, parentID int64) (*Comment, error) {
	if body == "" {
		return nil, &ValidationError{Field: "body", Message: "must not be empty"}
	}
	if author == "" {
		return nil, &ValidationError{Field: "user", Message: "is required"}
	}
	return &Comment{Entity: Entity{Kind: KindComment}, Body: body, Author: author, ParentID: parentID}, nil
}

// Owner returns the owning username.
func (c *Comment) Owner() string { return c.Author }

// CommentPatch carries the optional fields of a comment update.
type CommentPatch struct {
	Body *string
}

// Apply validates and applies the present fields.
func (p CommentPatch) Apply(c *Comment) error {
	if p.Body != nil {
		if *p.Body == "" {
			return &ValidationError{Field: "body", Message: "must not be empty"}
		}
		c.Body = *p.Body
	}
	return nil
}
