package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

// sortKeys maps sortable fields to document keys.
var sortKeys = map[repository.SortField]string{
	repository.SortByID:          "_id",
	repository.SortByTitle:       "title",
	repository.SortByDescription: "description",
	repository.SortByText:        "text",
	repository.SortByDate:        "date",
}

// buildFilter translates a list filter into a find filter.
// Absent filters are omitted so an empty filter matches every document.
func buildFilter(f repository.NewsFilter) bson.D {
	filter := bson.D{}

	if f.From != nil || f.To != nil {
		rng := bson.D{}
		if f.From != nil {
			rng = append(rng, bson.E{Key: "$gte", Value: *f.From})
		}
		if f.To != nil {
			rng = append(rng, bson.E{Key: "$lt", Value: *f.To})
		}
		filter = append(filter, bson.E{Key: "date", Value: rng})
	}

	if f.TitleContains != "" {
		filter = append(filter, bson.E{Key: "title", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.TitleContains),
			Options: "i",
		}})
	}

	return filter
}

// buildSort returns the sort document. _id is appended as a tiebreaker so equal keys
// come back in a stable order.
func buildSort(s repository.NewsSort) bson.D {
	key, ok := sortKeys[s.Field]
	if !ok {
		key = "date"
	}
	dir := 1
	if s.Descending {
		dir = -1
	}
	sort := bson.D{{Key: key, Value: dir}}
	if key != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}
	return sort
}

// buildSet translates the non-nil fields of a patch into a $set document.
func buildSet(p entity.NewsPatch) bson.D {
	set := bson.D{}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Text != nil {
		set = append(set, bson.E{Key: "text", Value: *p.Text})
	}
	if p.Date != nil {
		set = append(set, bson.E{Key: "date", Value: *p.Date})
	}
	return set
}
