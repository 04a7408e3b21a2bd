package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a comment under c.ParentID. A missing parent surfaces as
// a foreign key violation and is reported as ErrNotFound.
func (r *CommentRepository) Create(c *entity.Comment) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entities (kind, body, username, parent_id)
		VALUES ('comment', $1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Body, c.Author, c.ParentID)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == "entities_parent_id_fkey" {
			return repository.ErrNotFound
		}
		return err
	}
	c.Kind = entity.KindComment
	return nil
}

func (r *CommentRepository) GetByID(id int64) (*entity.Comment, error) {
	ctx := context.Background()
	c := &entity.Comment{Entity: entity.Entity{Kind: entity.KindComment}}

	row := r.pool.QueryRow(ctx, `
		SELECT e.id, e.body, e.username, u.email, e.parent_id, e.created_at, e.updated_at
		FROM entities e
		JOIN users u ON u.username = e.username
		WHERE e.id = $1 AND e.kind = 'comment'
	`, id)

	if err := row.Scan(&c.ID, &c.Body, &c.Author, &c.AuthorEmail, &c.ParentID,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Update(c *entity.Comment) error {
	ctx := context.Background()
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE entities
		SET body = $1, updated_at = $2
		WHERE id = $3 AND kind = 'comment'
	`, c.Body, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the comment; replies cascade through the parent_id
// foreign key.
func (r *CommentRepository) Delete(id int64) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		DELETE FROM entities WHERE id = $1 AND kind = 'comment'
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByUser(username string) ([]*entity.Comment, error) {
	return r.list(`e.username = $1 AND e.kind = 'comment'`, username)
}

// ListByParent returns the direct children of an entity; deeper replies are
// reached by following comment ids.
func (r *CommentRepository) ListByParent(parentID int64) ([]*entity.Comment, error) {
	return r.list(`e.parent_id = $1`, parentID)
}

func (r *CommentRepository) list(where string, arg any) ([]*entity.Comment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.body, e.username, u.email, e.parent_id, e.created_at, e.updated_at
		FROM entities e
		JOIN users u ON u.username = e.username
		WHERE `+where+`
		ORDER BY e.id
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		c := &entity.Comment{Entity: entity.Entity{Kind: entity.KindComment}}
		if err := rows.Scan(&c.ID, &c.Body, &c.Author, &c.AuthorEmail, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
