// Package news provides the use cases of the news resource: listing with filters and
// sorting, single-article CRUD, and the concurrent bulk delete.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrInvalidNewsID indicates that the id is not a 24 character hex ObjectID.
	ErrInvalidNewsID = errors.New("invalid news ID")

	// ErrNewsNotFound indicates that no article exists with the given id.
	ErrNewsNotFound = errors.New("news not found")

	// ErrInvalidDate indicates that the date list filter could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrSomeNewsNotDeleted indicates that at least one id of a bulk delete was
	// malformed or did not match an article. Deletions that succeeded are kept.
	ErrSomeNewsNotDeleted = errors.New("some news could not be found or deleted")
)
