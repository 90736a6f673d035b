package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sintesi/internal/ai"
	"sintesi/internal/summary/model"
	"sintesi/internal/summary/service"
	"sintesi/middleware"
	"sintesi/pkg/logger"
)

type SummaryHandler struct {
	Service *service.SummaryService
}

func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{Service: service}
}

func (h *SummaryHandler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID := middleware.OwnerID(r)

	var req model.CreateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.Service.CreateSummary(r.Context(), ownerID, req.Content)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create summary: %v", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.CreateSummaryResponse{
		ID:        summary.ID,
		Title:     summary.Title,
		CreatedAt: summary.CreatedAt,
	})
}

func (h *SummaryHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID := middleware.OwnerID(r)

	summaries, err := h.Service.GetSummaries(ownerID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching summaries: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaryID := r.URL.Query().Get("summaryId")
	if summaryID == "" {
		http.Error(w, "Missing summaryId parameter", http.StatusBadRequest)
		return
	}

	summary, err := h.Service.GetSummary(summaryID, middleware.OwnerID(r))
	if err != nil {
		logger.Sugar.Infof("Handler: Failed to get summary %s: %v", summaryID, err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (h *SummaryHandler) GetOutline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaryID := r.URL.Query().Get("summaryId")
	if summaryID == "" {
		http.Error(w, "Missing summaryId parameter", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.GetOutline(summaryID, middleware.OwnerID(r))
	if err != nil {
		logger.Sugar.Infof("Handler: Failed to build outline for %s: %v", summaryID, err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SummaryHandler) DeleteSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaryID := r.URL.Query().Get("summaryId")
	if summaryID == "" {
		http.Error(w, "Missing summaryId parameter", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteSummary(summaryID, middleware.OwnerID(r)); err != nil {
		logger.Sugar.Infof("Handler: Failed to delete summary %s: %v", summaryID, err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Summary deleted successfully"))
}

// statusForError maps the service/provider error taxonomy onto HTTP statuses
// so every failure mode stays distinguishable by the caller.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ai.ErrQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, ai.ErrEmptyResponse), errors.Is(err, ai.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
