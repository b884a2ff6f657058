package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

const newsColumns = "id, title, description, text, date"

type NewsRepo struct {
	db           *sql.DB
	queryBuilder *NewsQueryBuilder
}

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{
		db:           db,
		queryBuilder: NewNewsQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNews(s rowScanner) (*entity.News, error) {
	var n entity.News
	if err := s.Scan(&n.ID, &n.Title, &n.Description, &n.Text, &n.Date); err != nil {
		return nil, err
	}
	n.Date = entity.StorageTime(n.Date)
	return &n, nil
}

func (repo *NewsRepo) Find(ctx context.Context, q repository.NewsQuery) ([]*entity.News, error) {
	where, args := repo.queryBuilder.BuildWhereClause(q.Filter)
	query := "SELECT " + newsColumns + " FROM news"
	if where != "" {
		query += " " + where
	}
	query += " " + repo.queryBuilder.BuildOrderClause(q.Sort)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("Find: Scan: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	return out, nil
}

func (repo *NewsRepo) FindByID(ctx context.Context, id string) (*entity.News, error) {
	const query = "SELECT " + newsColumns + " FROM news WHERE id = $1 LIMIT 1"
	n, err := scanNews(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) Create(ctx context.Context, n *entity.News) error {
	const query = `
INSERT INTO news (id, title, description, text, date)
VALUES ($1, $2, $3, $4, $5)`
	id := entity.NewID()
	date := entity.StorageTime(n.Date)
	if _, err := repo.db.ExecContext(ctx, query, id, n.Title, n.Description, n.Text, date); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	n.ID = id
	n.Date = date
	return nil
}

func (repo *NewsRepo) UpdateByID(ctx context.Context, id string, patch entity.NewsPatch) (*entity.News, error) {
	if patch.IsEmpty() {
		return repo.FindByID(ctx, id)
	}
	set, args, next := repo.queryBuilder.BuildSetClause(patch)
	query := fmt.Sprintf("UPDATE news SET %s WHERE id = $%d RETURNING %s", set, next, newsColumns)
	args = append(args, id)

	n, err := scanNews(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateByID: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("DeleteByID: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteByID: RowsAffected: %w", err)
	}
	return affected > 0, nil
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news").Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) Ping(ctx context.Context) error {
	if err := repo.db.PingContext(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}
