package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"news-api/internal/domain/entity"
	pg "news-api/internal/infra/adapter/persistence/postgres"
	"news-api/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var newsCols = []string{"id", "title", "description", "text", "date"}

func newsRows(items ...*entity.News) *sqlmock.Rows {
	rows := sqlmock.NewRows(newsCols)
	for _, n := range items {
		rows.AddRow(n.ID, n.Title, n.Description, n.Text, n.Date)
	}
	return rows
}

func fixture() *entity.News {
	return &entity.News{
		ID:          "65fb5716a99861ca125601ec",
		Title:       "Test Title 1",
		Description: "Description 1",
		Text:        "Text 1",
		Date:        time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC),
	}
}

/* ─────────────────────────── 1. Find ─────────────────────────── */

func TestNewsRepo_Find(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	from := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	want := fixture()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, title, description, text, date FROM news WHERE date >= $1 AND date < $2 AND title ILIKE $3 ESCAPE '\' ORDER BY title DESC, id ASC`)).
		WithArgs(from, to, "%Test%").
		WillReturnRows(newsRows(want))

	repo := pg.NewNewsRepo(db)
	got, err := repo.Find(context.Background(), repository.NewsQuery{
		Filter: repository.NewsFilter{From: &from, To: &to, TitleContains: "Test"},
		Sort:   repository.NewsSort{Field: repository.SortByTitle, Descending: true},
	})
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if diff := cmp.Diff([]*entity.News{want}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNewsRepo_Find_EmptyIsNonNil(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, text, date FROM news ORDER BY date ASC, id ASC")).
		WillReturnRows(newsRows()) // 空集合で OK

	got, err := pg.NewNewsRepo(db).Find(context.Background(), repository.NewsQuery{})
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestNewsRepo_Find_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("FROM news").WillReturnError(dbErr)

	_, err := pg.NewNewsRepo(db).Find(context.Background(), repository.NewsQuery{})
	if !errors.Is(err, dbErr) {
		t.Fatalf("want wrapped %v, got %v", dbErr, err)
	}
}

/* ─────────────────────────── 2. FindByID ─────────────────────────── */

func TestNewsRepo_FindByID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := fixture()
	mock.ExpectQuery(regexp.QuoteMeta("FROM news WHERE id = $1")).
		WithArgs(want.ID).
		WillReturnRows(newsRows(want))

	got, err := pg.NewNewsRepo(db).FindByID(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("FindByID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsRepo_FindByID_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM news WHERE id").WillReturnError(sql.ErrNoRows)

	got, err := pg.NewNewsRepo(db).FindByID(context.Background(), "65fb5716a99861ca125601ec")
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

/* ─────────────────────────── 3. Create ─────────────────────────── */

func TestNewsRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	n := &entity.News{Title: "t", Description: "d", Text: "x", Date: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO news")).
		WithArgs(sqlmock.AnyArg(), "t", "d", "x", n.Date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := pg.NewNewsRepo(db).Create(context.Background(), n); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if !entity.IsValidID(n.ID) {
		t.Fatalf("Create should assign an ObjectID, got %q", n.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 4. UpdateByID ─────────────────────────── */

func TestNewsRepo_UpdateByID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := fixture()
	want.Title = "Updated Title"
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE news SET title = $1 WHERE id = $2 RETURNING id, title, description, text, date")).
		WithArgs("Updated Title", want.ID).
		WillReturnRows(newsRows(want))

	title := "Updated Title"
	got, err := pg.NewNewsRepo(db).UpdateByID(context.Background(), want.ID, entity.NewsPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateByID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsRepo_UpdateByID_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("UPDATE news SET").WillReturnRows(newsRows())

	title := "x"
	got, err := pg.NewNewsRepo(db).UpdateByID(context.Background(), "65fb5716a99861ca125601ec", entity.NewsPatch{Title: &title})
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestNewsRepo_UpdateByID_EmptyPatchReads(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := fixture()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, text, date FROM news WHERE id = $1")).
		WithArgs(want.ID).
		WillReturnRows(newsRows(want))

	got, err := pg.NewNewsRepo(db).UpdateByID(context.Background(), want.ID, entity.NewsPatch{})
	if err != nil {
		t.Fatalf("UpdateByID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ─────────────────────────── 5. DeleteByID / Count ─────────────────────────── */

func TestNewsRepo_DeleteByID(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"deleted", 1, true},
		{"nothing deleted", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM news WHERE id = $1")).
				WithArgs("65fb5716a99861ca125601ec").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := pg.NewNewsRepo(db).DeleteByID(context.Background(), "65fb5716a99861ca125601ec")
			if err != nil {
				t.Fatalf("DeleteByID err=%v", err)
			}
			if got != tt.want {
				t.Errorf("DeleteByID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewsRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM news")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	got, err := pg.NewNewsRepo(db).Count(context.Background())
	if err != nil || got != 7 {
		t.Fatalf("Count = (%d, %v), want (7, nil)", got, err)
	}
}
