package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
)

type stubService struct {
	gotReq    services.SubmitRequest
	submitErr error

	analysis    services.AnalysisResult
	analysisErr error

	list      []models.Feedback
	gotFilter store.Filter
}

func (s *stubService) Submit(_ context.Context, req services.SubmitRequest) (services.SubmitResult, error) {
	s.gotReq = req
	if s.submitErr != nil {
		return services.SubmitResult{}, s.submitErr
	}
	return services.SubmitResult{ID: "k3j2h1g0f9e8d", Success: true}, nil
}

func (s *stubService) GetAnalysis(context.Context, string) (services.AnalysisResult, error) {
	return s.analysis, s.analysisErr
}

func (s *stubService) List(_ context.Context, f store.Filter) ([]models.Feedback, error) {
	s.gotFilter = f
	return s.list, nil
}

func postForm(p *Pages, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	p.SubmitForm(rec, req)
	return rec
}

func TestFormPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NewPages(&stubService{}).Form(rec, httptest.NewRequest(http.MethodGet, "/feedback", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range append([]string{"Submit Your Feedback", `name="consentGiven"`}, models.Categories...) {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
}

func TestSubmitFormRedirects(t *testing.T) {
	stub := &stubService{}
	rec := postForm(NewPages(stub), url.Values{
		"category":     {"Personal Care"},
		"productName":  {"OneBlade"},
		"feedback":     {"Great shave"},
		"rating":       {"5"},
		"consentGiven": {"on"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/confirmation?id=k3j2h1g0f9e8d" {
		t.Errorf("Location = %q", loc)
	}
	if stub.gotReq.Rating != 5 || !stub.gotReq.ConsentGiven || stub.gotReq.IsAnonymous {
		t.Errorf("parsed request = %+v", stub.gotReq)
	}
}

func TestSubmitFormRerendersErrors(t *testing.T) {
	stub := &stubService{submitErr: &services.SubmissionError{Fields: map[string]string{
		"consentGiven": "You must agree to the collection and analysis of your feedback",
	}}}
	rec := postForm(NewPages(stub), url.Values{
		"category":    {"Ironing"},
		"productName": {`<script>alert(1)</script>`},
		"feedback":    {"steam is weak"},
		"rating":      {"2"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "You must agree to the collection and analysis of your feedback") {
		t.Error("field error not shown")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("product name rendered unescaped")
	}
	if !strings.Contains(body, "steam is weak") {
		t.Error("previous feedback text not kept")
	}
	if !strings.Contains(body, `value="2" checked`) {
		t.Error("previous rating not kept")
	}
}

func TestSubmitFormFailure(t *testing.T) {
	rec := postForm(NewPages(&stubService{submitErr: errors.New("boom")}), url.Values{"category": {"Others"}})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to submit feedback. Please try again.") {
		t.Error("failure message missing")
	}
}

func TestConfirmationPage(t *testing.T) {
	stub := &stubService{analysis: services.AnalysisResult{
		Feedback: models.Feedback{ID: "abc", Category: "Air Care", ProductName: "AC1215", Rating: 4, Feedback: "Quiet & effective"},
		Analysis: models.Analysis{
			Sentiment: models.SentimentPositive,
			Urgency:   models.UrgencyLow,
			Keywords:  []string{"quiet"},
			Tags:      []string{"noise"},
		},
		RelatedProducts: []models.Product{
			{ID: "p1", Title: "Philips Air Purifier 2000", Price: "₹9,999", Source: models.SourcePhilips, Link: "https://www.philips.co.in/x"},
			{ID: "p2", Title: "Philips Air Purifier 3000", Price: "₹14,999", Source: models.SourceAmazon},
		},
	}}
	p := NewPages(stub)

	rec := httptest.NewRecorder()
	p.Confirmation(rec, httptest.NewRequest(http.MethodGet, "/confirmation?id=abc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Quiet &amp; effective", "Positive", "#noise", "Philips Air Purifier 2000", "₹14,999", "https://www.amazon.in/s?k=Philips%20Air%20Purifier%203000"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	rec = httptest.NewRecorder()
	p.Confirmation(rec, httptest.NewRequest(http.MethodGet, "/confirmation?id=abc&source=Amazon", nil))
	if body := rec.Body.String(); strings.Contains(body, "Philips Air Purifier 2000") || !strings.Contains(body, "Philips Air Purifier 3000") {
		t.Error("source filter not applied")
	}
}

func TestConfirmationErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"missing id", "/confirmation", nil, http.StatusBadRequest},
		{"unknown id", "/confirmation?id=nope", services.ErrNotFound, http.StatusNotFound},
		{"failure", "/confirmation?id=x", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewPages(&stubService{analysisErr: tt.err}).Confirmation(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAdminPage(t *testing.T) {
	stub := &stubService{list: []models.Feedback{{
		ID: "a", Category: "Vacuum Cleaners", ProductName: "PowerPro", Rating: 2,
		Sentiment: models.SentimentNegative, Urgency: models.UrgencyHigh,
		Feedback: "Lost suction", Tags: []string{"performance"},
		CreatedAt: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}}}

	rec := httptest.NewRecorder()
	NewPages(stub).Admin(rec, httptest.NewRequest(http.MethodGet, "/admin?category=Vacuum+Cleaners&sentiment=negative&q=suction", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.gotFilter.Category != "Vacuum Cleaners" || stub.gotFilter.Sentiment != models.SentimentNegative || stub.gotFilter.Search != "suction" {
		t.Errorf("filter = %+v", stub.gotFilter)
	}
	body := rec.Body.String()
	for _, want := range []string{"Feedback Analytics Dashboard", "1248", "4.2 / 5", "PowerPro", "2025-04-02", "#performance", `value="Negative" selected`} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAdminPageBadFilter(t *testing.T) {
	stub := &stubService{}
	rec := httptest.NewRecorder()
	NewPages(stub).Admin(rec, httptest.NewRequest(http.MethodGet, "/admin?sentiment=furious", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid sentiment") {
		t.Error("filter error not shown")
	}
	if stub.gotFilter != (store.Filter{}) {
		t.Errorf("bad filter should fall back to no filter, got %+v", stub.gotFilter)
	}
}
