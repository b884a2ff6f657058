package db

import (
	"context"
	"database/sql"
	"fmt"
)

// MigrateUp creates the news table and its indexes. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS news (
    id          CHAR(24) PRIMARY KEY,
    title       VARCHAR(255) NOT NULL CHECK (title <> ''),
    description VARCHAR(255) NOT NULL CHECK (description <> ''),
    text        TEXT NOT NULL CHECK (text <> ''),
    date        TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("create news table: %w", err)
	}

	indexes := []string{
		// 日付フィルタ・日付ソート用
		`CREATE INDEX IF NOT EXISTS idx_news_date ON news(date)`,
		// タイトル部分一致の大文字小文字無視検索用
		`CREATE INDEX IF NOT EXISTS idx_news_title_lower ON news(lower(title))`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// MigrateDown drops the news table.
// Use with caution: this will delete all stored articles.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS news`); err != nil {
		return fmt.Errorf("drop news table: %w", err)
	}
	return nil
}
