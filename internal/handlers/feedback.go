package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
)

// FeedbackAPI is the service surface the HTTP layer needs.
type FeedbackAPI interface {
	Submit(ctx context.Context, req services.SubmitRequest) (services.SubmitResult, error)
	GetAnalysis(ctx context.Context, id string) (services.AnalysisResult, error)
	List(ctx context.Context, f store.Filter) ([]models.Feedback, error)
}

type FeedbackHandler struct {
	svc FeedbackAPI
}

func NewFeedbackHandler(svc FeedbackAPI) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// SubmitFeedbackResponse is returned after a successful submission.
type SubmitFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// AnalysisResponse wraps the stored record, its analysis and recommendations.
type AnalysisResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	services.AnalysisResult
}

// Submit handles POST /api/feedback.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		var serr *services.SubmissionError
		if errors.As(err, &serr) {
			writeJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Message: "Missing required fields",
				Errors:  serr.Fields,
			})
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("error submitting feedback")
		writeError(w, http.StatusInternalServerError, "Failed to submit feedback. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, SubmitFeedbackResponse{
		Success: true,
		Message: "Feedback submitted successfully",
		ID:      res.ID,
	})
}

// Analysis handles GET /api/feedback/{id}/analysis.
func (h *FeedbackHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.svc.GetAnalysis(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("feedback_id", id).Msg("error retrieving feedback analysis")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve feedback analysis")
		return
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{
		Success:        true,
		Message:        "Feedback analysis retrieved successfully",
		AnalysisResult: res,
	})
}
