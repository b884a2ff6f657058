package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

func TestBuildFilter(t *testing.T) {
	from := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		filter repository.NewsFilter
		want   bson.D
	}{
		{
			name:   "empty",
			filter: repository.NewsFilter{},
			want:   bson.D{},
		},
		{
			name:   "date range",
			filter: repository.NewsFilter{From: &from, To: &to},
			want: bson.D{
				{Key: "date", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
			},
		},
		{
			name:   "title is quoted and case-insensitive",
			filter: repository.NewsFilter{TitleContains: "a.b*"},
			want: bson.D{
				{Key: "title", Value: primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
			},
		},
		{
			name:   "combined",
			filter: repository.NewsFilter{From: &from, To: &to, TitleContains: "Test"},
			want: bson.D{
				{Key: "date", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
				{Key: "title", Value: primitive.Regex{Pattern: "Test", Options: "i"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name string
		sort repository.NewsSort
		want bson.D
	}{
		{"date asc", repository.NewsSort{Field: repository.SortByDate}, bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}},
		{"title desc", repository.NewsSort{Field: repository.SortByTitle, Descending: true}, bson.D{{Key: "title", Value: -1}, {Key: "_id", Value: 1}}},
		{"id maps to _id", repository.NewsSort{Field: repository.SortByID, Descending: true}, bson.D{{Key: "_id", Value: -1}}},
		{"unknown falls back to date", repository.NewsSort{Field: "views"}, bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSort(tt.sort))
		})
	}
}

func TestBuildSet(t *testing.T) {
	title := "Updated"
	date := time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)

	got := buildSet(entity.NewsPatch{Title: &title, Date: &date})
	assert.Equal(t, bson.D{{Key: "title", Value: "Updated"}, {Key: "date", Value: date}}, got)
	assert.Empty(t, buildSet(entity.NewsPatch{}))
}
