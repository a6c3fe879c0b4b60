package handlers

import (
	"net/http"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
)

// GetFeedbacksResponse represents the response for the admin feedback list
type GetFeedbacksResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Feedbacks []models.Feedback `json:"feedbacks"`
	Total     int               `json:"total"`
}

type AnalyticsResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Analytics models.Analytics `json:"analytics"`
}

// ListFeedbacks handles GET /api/admin/feedbacks. Query parameters are
// described by store.ParseFilter.
func (h *FeedbackHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	filter, err := store.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("error listing feedback")
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedbacks")
		return
	}
	if list == nil {
		list = []models.Feedback{}
	}

	writeJSON(w, http.StatusOK, GetFeedbacksResponse{
		Success:   true,
		Message:   "Feedbacks fetched successfully",
		Feedbacks: list,
		Total:     len(list),
	})
}

// Analytics handles GET /api/admin/analytics.
func Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AnalyticsResponse{
		Success:   true,
		Message:   "Analytics fetched successfully",
		Analytics: services.Analytics(),
	})
}
