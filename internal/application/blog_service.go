package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// BlogService covers posts and threaded comments: creation, owner-gated
// mutation, and the public listings.
type BlogService struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger
}

func NewBlogService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Posts: posts, Comments: comments, Users: users, Logger: logger}
}

func (s *BlogService) CreatePost(ctx context.Context, actor *entity.User, title, body string) (*entity.Post, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	p, err := entity.NewPost(title, body, actor.Username)
	if err != nil {
		return nil, err
	}
	if err := s.Posts.Create(p); err != nil {
		return nil, err
	}
	p.AuthorEmail = actor.Email
	return p, nil
}

func (s *BlogService) GetPost(ctx context.Context, id int64) (*entity.Post, error) {
	return s.Posts.GetByID(id)
}

func (s *BlogService) UpdatePost(ctx context.Context, actor *entity.User, id int64, patch entity.PostPatch) (*entity.Post, error) {
	p, err := s.Posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(actor, p); err != nil {
		return nil, err
	}
	if err := patch.Apply(p); err != nil {
		return nil, err
	}
	if err := s.Posts.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BlogService) DeletePost(ctx context.Context, actor *entity.User, id int64) error {
	p, err := s.Posts.GetByID(id)
	if err != nil {
		return err
	}
	if err := requireAuthor(actor, p); err != nil {
		return err
	}
	return s.Posts.Delete(id)
}

// ListPostsByUser returns the user's posts, failing when the user is absent
// so the endpoint can report 404 instead of an empty list.
func (s *BlogService) ListPostsByUser(ctx context.Context, username string) ([]*entity.Post, error) {
	if _, err := s.Users.GetByUsername(username); err != nil {
		return nil, err
	}
	return s.Posts.ListByUser(username)
}

// ReplyToPost creates a comment directly under a post.
func (s *BlogService) ReplyToPost(ctx context.Context, actor *entity.User, postID int64, body string) (*entity.Comment, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if _, err := s.Posts.GetByID(postID); err != nil {
		return nil, err
	}
	return s.createComment(actor, postID, body)
}

// ReplyToComment creates a comment under another comment, deepening the
// thread.
func (s *BlogService) ReplyToComment(ctx context.Context, actor *entity.User, commentID int64, body string) (*entity.Comment, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if _, err := s.Comments.GetByID(commentID); err != nil {
		return nil, err
	}
	return s.createComment(actor, commentID, body)
}

func (s *BlogService) createComment(actor *entity.User, parentID int64, body string) (*entity.Comment, error) {
	c, err := entity.NewComment(body, actor.Username, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.Comments.Create(c); err != nil {
		return nil, err
	}
	c.AuthorEmail = actor.Email
	return c, nil
}

func (s *BlogService) GetComment(ctx context.Context, id int64) (*entity.Comment, error) {
	return s.Comments.GetByID(id)
}

func (s *BlogService) UpdateComment(ctx context.Context, actor *entity.User, id int64, patch entity.CommentPatch) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(actor, c); err != nil {
		return nil, err
	}
	if err := patch.Apply(c); err != nil {
		return nil, err
	}
	if err := s.Comments.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, actor *entity.User, id int64) error {
	c, err := s.Comments.GetByID(id)
	if err != nil {
		return err
	}
	if err := requireAuthor(actor, c); err != nil {
		return err
	}
	return s.Comments.Delete(id)
}

// ListCommentsOfPost returns the direct children of a post.
func (s *BlogService) ListCommentsOfPost(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	if _, err := s.Posts.GetByID(postID); err != nil {
		return nil, err
	}
	return s.Comments.ListByParent(postID)
}

// ListCommentsByUser returns the user's comments, failing when the user is
// absent so the endpoint can report 404.
func (s *BlogService) ListCommentsByUser(ctx context.Context, username string) ([]*entity.Comment, error) {
	if _, err := s.Users.GetByUsername(username); err != nil {
		return nil, err
	}
	return s.Comments.ListByUser(username)
}
