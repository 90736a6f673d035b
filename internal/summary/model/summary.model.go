package model

import (
	"time"

	"sintesi/internal/outline"
)

// Summary is one persisted record. All fields are set at creation and never
// mutated afterwards; only create and delete exist.
type Summary struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"user_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"` // original user-submitted text
	FormattedContent string    `json:"formatted_content"`
	CreatedAt        time.Time `json:"created_at"`
}

// SummaryMetadata is the list-view projection, ordered most recent first.
type SummaryMetadata struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSummaryRequest struct {
	Content string `json:"content"`
}

type CreateSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// OutlineResponse is the server-side projection of formatted_content into
// typed nodes. Nodes are recomputed on every request, never stored.
type OutlineResponse struct {
	Title string         `json:"title"`
	Nodes []outline.Node `json:"nodes"`
}
