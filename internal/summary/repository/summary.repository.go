package repository

import (
	"database/sql"
	"time"

	"sintesi/internal/summary/model"
	"sintesi/pkg/logger"
)

type SummaryRepository struct {
	DB *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// Create inserts the fully-populated record in a single statement, so a
// summary either exists with all its fields or not at all.
func (r *SummaryRepository) Create(id, ownerID, title, content, formatted string) (time.Time, error) {
	var createdAt time.Time
	err := r.DB.QueryRow(`
		INSERT INTO summaries (id, user_id, title, content, formatted_content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`,
		id, ownerID, title, content, formatted,
	).Scan(&createdAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create summary for user %s: %v", ownerID, err)
	}
	return createdAt, err
}

// ListByOwner returns the owner's summaries, most recent first. Other
// owners' rows are never visible through this query.
func (r *SummaryRepository) ListByOwner(ownerID string) ([]model.SummaryMetadata, error) {
	rows, err := r.DB.Query(
		"SELECT id, title, created_at FROM summaries WHERE user_id = $1 ORDER BY created_at DESC",
		ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list summaries for user %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	summaries := []model.SummaryMetadata{}
	for rows.Next() {
		var s model.SummaryMetadata
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			continue
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Get fetches one record scoped to the owner; sql.ErrNoRows covers both a
// missing id and another owner's record.
func (r *SummaryRepository) Get(id, ownerID string) (*model.Summary, error) {
	var s model.Summary
	err := r.DB.QueryRow(`
		SELECT id, user_id, title, content, formatted_content, created_at
		FROM summaries WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	).Scan(&s.ID, &s.OwnerID, &s.Title, &s.Content, &s.FormattedContent, &s.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get summary %s: %v", id, err)
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes the record if the owner matches and reports how many rows
// went away (zero means not found or not yours).
func (r *SummaryRepository) Delete(id, ownerID string) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM summaries WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete summary %s: %v", id, err)
		return 0, err
	}
	return result.RowsAffected()
}
