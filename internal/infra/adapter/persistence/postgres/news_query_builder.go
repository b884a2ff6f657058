// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

// sortColumns whitelists ORDER BY columns. Nothing user supplied is interpolated.
var sortColumns = map[repository.SortField]string{
	repository.SortByID:          "id",
	repository.SortByTitle:       "title",
	repository.SortByDescription: "description",
	repository.SortByText:        "text",
	repository.SortByDate:        "date",
}

// NewsQueryBuilder builds SQL fragments for news queries.
// It uses PostgreSQL-specific features like ILIKE and numbered placeholders ($1, $2, etc.).
type NewsQueryBuilder struct{}

// NewNewsQueryBuilder creates a new query builder instance.
func NewNewsQueryBuilder() *NewsQueryBuilder {
	return &NewsQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and its arguments for a list filter.
// Returns an empty clause when no filter is set.
func (qb *NewsQueryBuilder) BuildWhereClause(f repository.NewsFilter) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if f.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", paramIndex))
		args = append(args, *f.From)
		paramIndex++
	}
	if f.To != nil {
		conditions = append(conditions, fmt.Sprintf("date < $%d", paramIndex))
		args = append(args, *f.To)
		paramIndex++
	}
	if f.TitleContains != "" {
		conditions = append(conditions, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, paramIndex))
		args = append(args, "%"+EscapeILIKE(f.TitleContains)+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildOrderClause builds the ORDER BY clause. id is used as a tiebreaker.
func (qb *NewsQueryBuilder) BuildOrderClause(s repository.NewsSort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "date"
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	if col == "id" {
		return "ORDER BY id " + dir
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
}

// BuildSetClause builds the SET clause for the non-nil fields of a patch.
// Placeholders start at $1; the returned next index is free for the WHERE clause.
func (qb *NewsQueryBuilder) BuildSetClause(p entity.NewsPatch) (clause string, args []interface{}, next int) {
	var sets []string
	next = 1
	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, next))
		args = append(args, v)
		next++
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Text != nil {
		add("text", *p.Text)
	}
	if p.Date != nil {
		add("date", *p.Date)
	}
	return strings.Join(sets, ", "), args, next
}

// EscapeILIKE escapes the ILIKE wildcards so the value matches literally.
func EscapeILIKE(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
