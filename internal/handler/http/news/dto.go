// Package news provides HTTP handlers for the news resource under /api/news.
// It includes handlers for listing, fetching, creating, replacing, patching and deleting
// articles, plus the body validation middleware shared by the write routes.
package news

import (
	"news-api/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          string `json:"_id" example:"65fb5716a99861ca125601ec"`
	Title       string `json:"title" example:"Go 1.23 released"`
	Description string `json:"description" example:"Release notes"`
	Text        string `json:"text" example:"The Go team is happy to announce..."`
	Date        string `json:"date" example:"2024-03-25T00:00:00.000Z"`
}

func toDTO(n *entity.News) DTO {
	return DTO{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Text:        n.Text,
		Date:        entity.FormatDate(n.Date),
	}
}

func toDTOs(list []*entity.News) []DTO {
	out := make([]DTO, 0, len(list))
	for _, n := range list {
		out = append(out, toDTO(n))
	}
	return out
}

