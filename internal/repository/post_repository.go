package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blog-service/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByCategory(ctx context.Context, category string) ([]model.Post, error)
	FindByCreator(ctx context.Context, creator uuid.UUID) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresPostRepository struct {
	db *sqlx.DB
}

func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	var created model.Post
	query := `
		INSERT INTO posts (title, category, description, thumbnail, creator)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, category, description, thumbnail, creator, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		post.Title, post.Category, post.Description, post.Thumbnail, post.Creator,
	).StructScan(&created)

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	query := `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at FROM posts WHERE id = $1`
	err := r.db.GetContext(ctx, &post, query, id)

	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postgresPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	query := `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at FROM posts ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &posts, query)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresPostRepository) FindByCategory(ctx context.Context, category string) ([]model.Post, error) {
	var posts []model.Post
	query := `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at FROM posts WHERE category = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &posts, query, category)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresPostRepository) FindByCreator(ctx context.Context, creator uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	query := `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at FROM posts WHERE creator = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &posts, query, creator)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresPostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	var updated model.Post
	query := `
		UPDATE posts SET title = $1, category = $2, description = $3, thumbnail = $4, updated_at = now()
		WHERE id = $5
		RETURNING id, title, category, description, thumbnail, creator, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		post.Title, post.Category, post.Description, post.Thumbnail, post.ID,
	).StructScan(&updated)

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	return err
}
