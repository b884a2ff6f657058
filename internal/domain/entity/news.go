// Package entity defines the core domain entities and validation logic for the application.
// It contains the News article entity, its field constraints, and the payload validator
// used by every write path (REST and gRPC).
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field length limits, counted in Unicode code points.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 255
	MaxTextLength        = 1024 * 1024
)

// News represents a news article stored in the document engine.
type News struct {
	ID          string
	Title       string
	Description string
	Text        string
	Date        time.Time
}

// NewsInput carries the fields of a create or full replace.
// A nil Date means "not supplied".
type NewsInput struct {
	Title       string
	Description string
	Text        string
	Date        *time.Time
}

// NewsPatch carries the fields of a partial update. Nil fields are left untouched.
type NewsPatch struct {
	Title       *string
	Description *string
	Text        *string
	Date        *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p NewsPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Text == nil && p.Date == nil
}

// Patch converts a full input into the equivalent patch. Date stays nil when not supplied,
// so a replace without a date keeps the stored one.
func (in NewsInput) Patch() NewsPatch {
	title, description, text := in.Title, in.Description, in.Text
	return NewsPatch{
		Title:       &title,
		Description: &description,
		Text:        &text,
		Date:        in.Date,
	}
}

// NewID returns a fresh identifier in the document engine's ObjectID format.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether s is a syntactically valid news identifier
// (24 hexadecimal characters).
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// DateLayout renders dates with millisecond precision in UTC on every transport.
const DateLayout = "2006-01-02T15:04:05.000Z"

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// StorageTime truncates t to the millisecond precision kept by the storage engines
// and normalizes it to UTC.
func StorageTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
