package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/AnshRaj112/feedbackhub-backend/internal/handlers"
	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
)

// Pages serves the HTML routes.
type Pages struct {
	svc handlers.FeedbackAPI
}

func NewPages(svc handlers.FeedbackAPI) *Pages {
	return &Pages{svc: svc}
}

// Form handles GET / and GET /feedback.
func (p *Pages) Form(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, FeedbackForm(FormState{}))
}

// SubmitForm handles POST /feedback.
func (p *Pages) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, FeedbackForm(FormState{Message: "Invalid form submission"}))
		return
	}

	req := services.SubmitRequest{
		Category:     r.PostForm.Get("category"),
		ProductName:  r.PostForm.Get("productName"),
		Feedback:     r.PostForm.Get("feedback"),
		IsAnonymous:  checkbox(r.PostForm.Get("isAnonymous")),
		ConsentGiven: checkbox(r.PostForm.Get("consentGiven")),
	}
	req.Rating, _ = strconv.Atoi(r.PostForm.Get("rating"))

	res, err := p.svc.Submit(r.Context(), req)
	if err != nil {
		var serr *services.SubmissionError
		if errors.As(err, &serr) {
			render(w, r, http.StatusUnprocessableEntity, FeedbackForm(FormState{Values: req, Errors: serr.Fields}))
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("error submitting feedback form")
		render(w, r, http.StatusInternalServerError, FeedbackForm(FormState{
			Values:  req,
			Message: "Failed to submit feedback. Please try again.",
		}))
		return
	}

	http.Redirect(w, r, "/confirmation?id="+res.ID, http.StatusSeeOther)
}

// Confirmation handles GET /confirmation?id=&source=.
func (p *Pages) Confirmation(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		render(w, r, http.StatusBadRequest, Message("Error", "No feedback id was provided."))
		return
	}

	res, err := p.svc.GetAnalysis(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		render(w, r, http.StatusNotFound, Message("Error", "Feedback not found"))
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("feedback_id", id).Msg("error loading confirmation")
		render(w, r, http.StatusInternalServerError, Message("Error", "Failed to retrieve feedback analysis"))
		return
	}

	render(w, r, http.StatusOK, Confirmation(res, r.URL.Query().Get("source")))
}

// Admin handles GET /admin.
func (p *Pages) Admin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := AdminData{Analytics: services.Analytics(), Query: q}

	filter, err := store.ParseFilter(q)
	if err != nil {
		data.FilterError = err.Error()
		filter = store.Filter{}
	}
	list, err := p.svc.List(r.Context(), filter)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("error listing feedback for dashboard")
		data.FilterError = "Failed to fetch feedbacks"
	}
	data.Feedbacks = list

	render(w, r, http.StatusOK, AdminDashboard(data))
}

func checkbox(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
