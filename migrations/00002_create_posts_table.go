package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePostsTable, downCreatePostsTable)
}

func upCreatePostsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE posts (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title TEXT NOT NULL,
	  category TEXT NOT NULL,
	  description TEXT NOT NULL,
	  thumbnail TEXT NOT NULL,
	  creator UUID NOT NULL REFERENCES users(id),
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_posts_category ON posts(category);
	CREATE INDEX idx_posts_creator ON posts(creator);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreatePostsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS posts;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
