package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(p *entity.Post) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entities (kind, title, body, username)
		VALUES ('post', $1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Body, p.Author)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Kind = entity.KindPost
	return nil
}

func (r *PostRepository) GetByID(id int64) (*entity.Post, error) {
	ctx := context.Background()
	p := &entity.Post{Entity: entity.Entity{Kind: entity.KindPost}}

	row := r.pool.QueryRow(ctx, `
		SELECT e.id, e.title, e.body, e.username, u.email, e.created_at, e.updated_at
		FROM entities e
		JOIN users u ON u.username = e.username
		WHERE e.id = $1 AND e.kind = 'post'
	`, id)

	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.AuthorEmail,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(p *entity.Post) error {
	ctx := context.Background()
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE entities
		SET title = $1, body = $2, updated_at = $3
		WHERE id = $4 AND kind = 'post'
	`, p.Title, p.Body, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the post; the parent_id foreign key cascades to the whole
// comment thread underneath it.
func (r *PostRepository) Delete(id int64) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		DELETE FROM entities WHERE id = $1 AND kind = 'post'
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListByUser(username string) ([]*entity.Post, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.title, e.body, e.username, u.email, e.created_at, e.updated_at
		FROM entities e
		JOIN users u ON u.username = e.username
		WHERE e.username = $1 AND e.kind = 'post'
		ORDER BY e.id
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		p := &entity.Post{Entity: entity.Entity{Kind: entity.KindPost}}
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.AuthorEmail,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
