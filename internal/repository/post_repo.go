package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"social-api/internal/domain"
)

// PostRepository define el contrato de persistencia para publicaciones y comentarios.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Update(ctx context.Context, id, title, content string) error
	Like(ctx context.Context, id string) (int, error)
	AddComment(ctx context.Context, comment domain.Comment) error
	Delete(ctx context.Context, id string) error
}

// PgPostRepository implementa PostRepository usando pgxpool.
type PgPostRepository struct {
	pool DBTX
}

func NewPgPostRepository(pool DBTX) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) error {
	const query = `
		INSERT INTO posts (id, user_id, title, content, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Content,
		post.Likes,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return classify(err)
}

func (r *PgPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	const query = `
		SELECT id, user_id, title, content, likes, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		posts []domain.Post
		ids   []string
	)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Likes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Comments = []domain.Comment{}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	comments, err := r.listComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if c, ok := comments[posts[i].ID]; ok {
			posts[i].Comments = c
		}
	}
	return posts, nil
}

func (r *PgPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	const query = `
		SELECT id, user_id, title, content, likes, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	var p domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Likes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}

	comments, err := r.listComments(ctx, []string{p.ID})
	if err != nil {
		return domain.Post{}, err
	}
	p.Comments = comments[p.ID]
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	return p, nil
}

// Update reemplaza solo los campos no vacíos.
func (r *PgPostRepository) Update(ctx context.Context, id, title, content string) error {
	const query = `
		UPDATE posts
		SET title = COALESCE(NULLIF($2, ''), title),
		    content = COALESCE(NULLIF($3, ''), content),
		    updated_at = now()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, title, content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgPostRepository) Like(ctx context.Context, id string) (int, error) {
	const query = `
		UPDATE posts
		SET likes = likes + 1
		WHERE id = $1
		RETURNING likes
	`
	var likes int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&likes); err != nil {
		return 0, err
	}
	return likes, nil
}

func (r *PgPostRepository) AddComment(ctx context.Context, comment domain.Comment) error {
	const query = `
		INSERT INTO post_comments (id, post_id, comment, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, comment.ID, comment.PostID, comment.Comment, comment.CreatedAt)
	return classify(err)
}

func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgPostRepository) listComments(ctx context.Context, postIDs []string) (map[string][]domain.Comment, error) {
	const query = `
		SELECT id, post_id, comment, created_at
		FROM post_comments
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Comment, len(postIDs))
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		out[c.PostID] = append(out[c.PostID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
