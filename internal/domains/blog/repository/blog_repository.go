package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"samplemarine-backend/internal/domains/blog/model"
)

type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error)
	Count(ctx context.Context) (int64, error)
}

type blogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{pool: pool}
}

func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	query := `
        INSERT INTO blog_posts (id, title, slug, excerpt, content, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	post.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int) ([]*model.BlogPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
        SELECT id, title, slug, excerpt, content, created_at
        FROM blog_posts
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.BlogPost{}
	for rows.Next() {
		var post model.BlogPost
		if err := rows.Scan(&post.ID, &post.Title, &post.Slug,
			&post.Excerpt, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog posts: %w", err)
	}

	return posts, nil
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM blog_posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return count, nil
}
