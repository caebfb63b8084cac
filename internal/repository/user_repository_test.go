package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"blog-service/internal/model"
	repo "blog-service/internal/repository"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Name", "a@b.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	nid, err := r.Create(context.Background(), &model.User{Name: "Name", Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, id, nid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "posts"}).
		AddRow(id, "Name", "a@b.com", "hash", 3)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("a@b.com").WillReturnRows(rows)

	u, err := r.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, 3, u.Posts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	_, err = r.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_AdjustPostCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET posts = posts + $1 WHERE id = $2`)).
		WithArgs(1, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET posts = posts + $1 WHERE id = $2`)).
		WithArgs(-1, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.AdjustPostCount(context.Background(), id, 1))
	require.NoError(t, r.AdjustPostCount(context.Background(), id, -1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_UpdateAvatar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "avatar", "posts"}).
		AddRow(id, "Name", "a@b.com", "hash", "newpicabc.png", 0)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET avatar = $1, updated_at = now()`)).
		WithArgs("newpicabc.png", id).
		WillReturnRows(rows)

	u, err := r.UpdateAvatar(context.Background(), id, "newpicabc.png")
	require.NoError(t, err)
	require.NotNil(t, u.Avatar)
	require.Equal(t, "newpicabc.png", *u.Avatar)
	require.NoError(t, mock.ExpectationsWereMet())
}
