package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blog-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) (*model.User, error)
	AdjustPostCount(ctx context.Context, id uuid.UUID, delta int) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.PasswordHash).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password_hash, avatar, posts, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password_hash, avatar, posts, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	query := `SELECT id, name, email, avatar, posts, created_at, updated_at FROM users ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &users, query)

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email, passwordHash string) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users SET name = $1, email = $2, password_hash = $3, updated_at = now()
		WHERE id = $4
		RETURNING id, name, email, password_hash, avatar, posts, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, name, email, passwordHash, id).StructScan(&user)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users SET avatar = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, name, email, password_hash, avatar, posts, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, avatar, id).StructScan(&user)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// AdjustPostCount moves the denormalized post counter by delta. The counter
// and the triggering post mutation are separate statements, so a failure in
// between leaves drift; callers accept that (there is no spanning transaction).
func (r *postgresUserRepository) AdjustPostCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE users SET posts = posts + $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, delta, id)

	return err
}
