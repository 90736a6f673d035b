package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sintesi/internal/outline"
	"sintesi/internal/summary/model"
	"sintesi/internal/summary/repository"
	"sintesi/socket"
)

var (
	ErrEmptyContent = errors.New("inserisci del testo da analizzare")
	ErrNotFound     = errors.New("riassunto non trovato")
)

// Generator produces the formatted outline for a block of raw text. The
// production implementation is the ai.Client; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, content string) (string, error)
}

type SummaryService struct {
	Repo      *repository.SummaryRepository
	Generator Generator
	Hub       *socket.Hub
}

func NewSummaryService(repo *repository.SummaryRepository, gen Generator, hub *socket.Hub) *SummaryService {
	return &SummaryService{Repo: repo, Generator: gen, Hub: hub}
}

// CreateSummary runs the whole submission flow: reject blank input before
// any network call, make exactly one generation request, derive the title
// from the completion, persist the record atomically, then signal the
// owner's list views. A failed generation leaves no record behind.
func (s *SummaryService) CreateSummary(ctx context.Context, ownerID, rawContent string) (*model.Summary, error) {
	if strings.TrimSpace(rawContent) == "" {
		return nil, ErrEmptyContent
	}

	formatted, err := s.Generator.Generate(ctx, rawContent)
	if err != nil {
		return nil, err
	}

	title := outline.ExtractTitle(formatted)

	id := generateSummaryID()
	if id == "" {
		return nil, errors.New("failed to generate summary ID")
	}

	createdAt, err := s.Repo.Create(id, ownerID, title, rawContent, formatted)
	if err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.Hub.NotifyOwner(ownerID)

	return &model.Summary{
		ID:               id,
		OwnerID:          ownerID,
		Title:            title,
		Content:          rawContent,
		FormattedContent: formatted,
		CreatedAt:        createdAt,
	}, nil
}

func (s *SummaryService) GetSummaries(ownerID string) ([]model.SummaryMetadata, error) {
	return s.Repo.ListByOwner(ownerID)
}

func (s *SummaryService) GetSummary(id, ownerID string) (*model.Summary, error) {
	summary, err := s.Repo.Get(id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return summary, err
}

// GetOutline projects a stored summary into its typed node sequence.
func (s *SummaryService) GetOutline(id, ownerID string) (*model.OutlineResponse, error) {
	summary, err := s.GetSummary(id, ownerID)
	if err != nil {
		return nil, err
	}
	return &model.OutlineResponse{
		Title: summary.Title,
		Nodes: outline.Parse(summary.FormattedContent),
	}, nil
}

func (s *SummaryService) DeleteSummary(id, ownerID string) error {
	rowsAffected, err := s.Repo.Delete(id, ownerID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	s.Hub.NotifyOwner(ownerID)
	return nil
}

func generateSummaryID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
