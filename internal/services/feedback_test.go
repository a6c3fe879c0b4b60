package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
)

type fakeAnalyzer struct {
	mu              sync.Mutex
	translated      []string
	analyzed        []string
	recommendations int
	// catalogCalls answers that many recommendation calls as a catalogue fallback.
	catalogCalls int
}

func (f *fakeAnalyzer) TranslateToEnglish(_ context.Context, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translated = append(f.translated, text)
	return "EN: " + text
}

func (f *fakeAnalyzer) AnalyzeFeedback(_ context.Context, _, _, text string) models.Analysis {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzed = append(f.analyzed, text)
	return models.Analysis{
		Sentiment: models.SentimentPositive,
		Keywords:  []string{"crispy"},
		Tags:      []string{"performance"},
		Urgency:   models.UrgencyLow,
	}
}

func (f *fakeAnalyzer) GenerateProductRecommendations(_ context.Context, fb models.Feedback) ([]models.Product, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommendations++
	if f.recommendations <= f.catalogCalls {
		return []models.Product{{ID: "p1", Title: "Philips Product", Price: "₹9,999"}}, false
	}
	return []models.Product{{ID: "p1", Title: "Philips " + fb.Category, Price: "₹1"}}, true
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]models.Product
	ttl  time.Duration
	err  error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]models.Product{}} }

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]models.Product)) = v
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = value.([]models.Product)
	c.ttl = ttl
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.Feedback
	err    error
}

func (p *fakePublisher) PublishFeedback(_ context.Context, fb models.Feedback) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fb)
	return p.err
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		Category:     "Kitchen Appliances",
		ProductName:  "  Philips Air Fryer HD9252 ",
		Feedback:     "Cooks evenly and is easy to clean",
		Rating:       4,
		ConsentGiven: true,
	}
}

func TestSubmitStoresTranslatedAnalysedRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	ai := &fakeAnalyzer{}
	pub := &fakePublisher{}
	svc := NewFeedbackService(st, ai, nil, pub, time.Hour)
	fixed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Success {
		t.Error("Success = false")
	}
	if len(res.ID) != feedbackIDLength {
		t.Errorf("id %q has length %d, want %d", res.ID, len(res.ID), feedbackIDLength)
	}
	for _, r := range res.ID {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", r) {
			t.Fatalf("id %q is not base36", res.ID)
		}
	}

	fb, err := st.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if fb.Feedback != "EN: Cooks evenly and is easy to clean" {
		t.Errorf("Feedback = %q, want translated text", fb.Feedback)
	}
	if fb.ProductName != "Philips Air Fryer HD9252" {
		t.Errorf("ProductName = %q, want trimmed", fb.ProductName)
	}
	if fb.Sentiment != models.SentimentPositive || fb.Urgency != models.UrgencyLow {
		t.Errorf("analysis not stored: %+v", fb)
	}
	if !fb.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v", fb.CreatedAt)
	}
	if len(ai.analyzed) != 1 || ai.analyzed[0] != fb.Feedback {
		t.Errorf("analysis ran on %v, want the translated body", ai.analyzed)
	}
	if len(pub.events) != 1 || pub.events[0].ID != res.ID {
		t.Errorf("published events = %+v", pub.events)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
		field  string
		msg    string
	}{
		{"missing category", func(r *SubmitRequest) { r.Category = "" }, "category", "Please select a product category"},
		{"unknown category", func(r *SubmitRequest) { r.Category = "Toys" }, "category", "Please select a product category"},
		{"blank product", func(r *SubmitRequest) { r.ProductName = "   " }, "productName", "Product name is required"},
		{"blank feedback", func(r *SubmitRequest) { r.Feedback = "\n" }, "feedback", "Feedback is required"},
		{"no rating", func(r *SubmitRequest) { r.Rating = 0 }, "rating", "Please provide a rating"},
		{"rating too high", func(r *SubmitRequest) { r.Rating = 6 }, "rating", "Please provide a rating"},
		{"no consent", func(r *SubmitRequest) { r.ConsentGiven = false }, "consentGiven", "You must agree to the collection and analysis of your feedback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			ai := &fakeAnalyzer{}
			svc := NewFeedbackService(st, ai, nil, nil, time.Hour)

			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Submit(context.Background(), req)

			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("error = %v, want ErrMissingFields", err)
			}
			var serr *SubmissionError
			if !errors.As(err, &serr) {
				t.Fatalf("error is not a *SubmissionError")
			}
			if serr.Fields[tt.field] != tt.msg {
				t.Errorf("Fields[%q] = %q, want %q", tt.field, serr.Fields[tt.field], tt.msg)
			}
			if len(ai.translated) != 0 {
				t.Error("invalid submission reached the model")
			}
			if st.Count(context.Background()) != 0 {
				t.Error("invalid submission was stored")
			}
		})
	}
}

func TestSubmitPublishFailureIsNotFatal(t *testing.T) {
	svc := NewFeedbackService(store.NewMemory(), &fakeAnalyzer{}, nil, &fakePublisher{err: errors.New("bus closed")}, time.Hour)
	if _, err := svc.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestGetAnalysis(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	ai := &fakeAnalyzer{}
	cache := newFakeCache()
	svc := NewFeedbackService(st, ai, cache, nil, 2*time.Hour)

	res, err := svc.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	first, err := svc.GetAnalysis(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if first.Feedback.ID != res.ID {
		t.Errorf("Feedback.ID = %q", first.Feedback.ID)
	}
	if first.Analysis.Sentiment != models.SentimentPositive {
		t.Errorf("Analysis = %+v", first.Analysis)
	}
	if len(first.RelatedProducts) != 1 || first.RelatedProducts[0].Title != "Philips Kitchen Appliances" {
		t.Errorf("RelatedProducts = %+v", first.RelatedProducts)
	}
	if cache.ttl != 2*time.Hour {
		t.Errorf("cache ttl = %v", cache.ttl)
	}

	if _, err := svc.GetAnalysis(ctx, res.ID); err != nil {
		t.Fatalf("second GetAnalysis() error = %v", err)
	}
	if ai.recommendations != 1 {
		t.Errorf("recommendations generated %d times, want 1 (cached)", ai.recommendations)
	}

	if _, err := svc.GetAnalysis(ctx, "doesnotexist1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestGetAnalysisDoesNotCacheCatalogFallback(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAnalyzer{catalogCalls: 1}
	cache := newFakeCache()
	svc := NewFeedbackService(store.NewMemory(), ai, cache, nil, time.Hour)

	res, err := svc.Submit(ctx, validRequest())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	first, err := svc.GetAnalysis(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if first.RelatedProducts[0].Title != "Philips Product" {
		t.Errorf("first RelatedProducts = %+v, want catalogue", first.RelatedProducts)
	}
	if len(cache.data) != 0 {
		t.Errorf("catalogue fallback was cached: %v", cache.data)
	}

	second, err := svc.GetAnalysis(ctx, res.ID)
	if err != nil {
		t.Fatalf("second GetAnalysis() error = %v", err)
	}
	if second.RelatedProducts[0].Title != "Philips Kitchen Appliances" {
		t.Errorf("second RelatedProducts = %+v, want model answer", second.RelatedProducts)
	}
	if ai.recommendations != 2 {
		t.Errorf("recommendations generated %d times, want 2", ai.recommendations)
	}

	if _, err := svc.GetAnalysis(ctx, res.ID); err != nil {
		t.Fatalf("third GetAnalysis() error = %v", err)
	}
	if ai.recommendations != 2 {
		t.Errorf("model answer not cached: %d generations", ai.recommendations)
	}
}

func TestGetAnalysisCacheErrorsDegrade(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.err = errors.New("redis down")
	ai := &fakeAnalyzer{}
	svc := NewFeedbackService(store.NewMemory(), ai, cache, nil, time.Hour)

	res, _ := svc.Submit(ctx, validRequest())
	got, err := svc.GetAnalysis(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if len(got.RelatedProducts) != 1 {
		t.Errorf("RelatedProducts = %+v", got.RelatedProducts)
	}
}

func TestRandomID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := randomID()
		if len(id) != feedbackIDLength {
			t.Fatalf("randomID() = %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAnalyticsFigures(t *testing.T) {
	a := Analytics()
	if a.TotalFeedback != 1248 || a.AverageRating != 4.2 {
		t.Errorf("totals = %d / %v", a.TotalFeedback, a.AverageRating)
	}
	sum := 0
	for _, c := range a.CategoryBreakdown {
		sum += c.Percentage
	}
	if sum != 100 {
		t.Errorf("category percentages sum to %d", sum)
	}
	s := a.SentimentBreakdown
	if s.Positive+s.Neutral+s.Negative != 100 {
		t.Errorf("sentiment breakdown = %+v", s)
	}
	u := a.UrgencyBreakdown
	if u.High+u.Medium+u.Low != a.TotalFeedback {
		t.Errorf("urgency breakdown %+v does not add up to %d", u, a.TotalFeedback)
	}
	if len(a.MonthlyTrends) != 6 || a.MonthlyTrends[5].Month != "Apr" {
		t.Errorf("MonthlyTrends = %+v", a.MonthlyTrends)
	}
}
