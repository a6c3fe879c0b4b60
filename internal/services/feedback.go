package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
	"github.com/AnshRaj112/feedbackhub-backend/internal/validation"
)

var (
	// ErrMissingFields wraps every submission validation failure.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNotFound is returned for unknown feedback ids.
	ErrNotFound = store.ErrNotFound
)

const feedbackIDLength = 13

// Analyzer is the AI surface the feedback service depends on.
type Analyzer interface {
	TranslateToEnglish(ctx context.Context, text string) string
	AnalyzeFeedback(ctx context.Context, category, productName, text string) models.Analysis
	GenerateProductRecommendations(ctx context.Context, fb models.Feedback) (products []models.Product, generated bool)
}

// SubmitRequest represents a feedback submission from the form or the API.
type SubmitRequest struct {
	Category     string `json:"category" validate:"required,category"`
	ProductName  string `json:"productName" validate:"required,max=200"`
	Feedback     string `json:"feedback" validate:"required,max=5000"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	IsAnonymous  bool   `json:"isAnonymous"`
	ConsentGiven bool   `json:"consentGiven" validate:"required"`
}

var submitMessages = map[string]string{
	"category":     "Please select a product category",
	"productName":  "Product name is required",
	"feedback":     "Feedback is required",
	"rating":       "Please provide a rating",
	"consentGiven": "You must agree to the collection and analysis of your feedback",
}

// Normalize trims free-text fields in place.
func (r *SubmitRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Feedback = strings.TrimSpace(r.Feedback)
}

// SubmissionError carries the per-field messages of a rejected submission.
type SubmissionError struct {
	Fields map[string]string
}

func (e *SubmissionError) Error() string { return ErrMissingFields.Error() }

func (e *SubmissionError) Unwrap() error { return ErrMissingFields }

type SubmitResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// AnalysisResult is what the confirmation page shows.
type AnalysisResult struct {
	Feedback        models.Feedback  `json:"feedback"`
	Analysis        models.Analysis  `json:"analysis"`
	RelatedProducts []models.Product `json:"relatedProducts"`
}

type FeedbackService struct {
	store    store.Store
	ai       Analyzer
	cache    Cache
	events   Publisher
	cacheTTL time.Duration
	now      func() time.Time
}

func NewFeedbackService(st store.Store, ai Analyzer, cache Cache, events Publisher, cacheTTL time.Duration) *FeedbackService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &FeedbackService{
		store:    st,
		ai:       ai,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates, translates, analyses and stores a submission.
func (s *FeedbackService) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	req.Normalize()
	if err := validation.Struct(req, submitMessages); err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			return SubmitResult{}, &SubmissionError{Fields: verr.Fields()}
		}
		return SubmitResult{}, err
	}

	translated := s.ai.TranslateToEnglish(ctx, req.Feedback)
	analysis := s.ai.AnalyzeFeedback(ctx, req.Category, req.ProductName, translated)

	id, err := s.newID(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	fb := models.Feedback{
		ID:           id,
		Category:     req.Category,
		ProductName:  req.ProductName,
		Feedback:     translated,
		Rating:       req.Rating,
		IsAnonymous:  req.IsAnonymous,
		ConsentGiven: req.ConsentGiven,
		Sentiment:    analysis.Sentiment,
		Keywords:     analysis.Keywords,
		Tags:         analysis.Tags,
		Urgency:      analysis.Urgency,
		CreatedAt:    s.now(),
	}
	if err := s.store.Save(ctx, fb); err != nil {
		return SubmitResult{}, fmt.Errorf("store feedback: %w", err)
	}
	metrics.FeedbackSubmitted.WithLabelValues(fb.Category, string(fb.Sentiment)).Inc()

	if s.events != nil {
		if err := s.events.PublishFeedback(ctx, fb); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("feedback_id", id).Msg("failed to publish feedback event")
		}
	}

	logging.Ctx(ctx).Info().
		Str("feedback_id", id).
		Str("category", fb.Category).
		Str("sentiment", string(fb.Sentiment)).
		Str("urgency", string(fb.Urgency)).
		Msg("feedback submitted")

	return SubmitResult{ID: id, Success: true}, nil
}

// GetAnalysis returns the stored record, its analysis and related products.
func (s *FeedbackService) GetAnalysis(ctx context.Context, id string) (AnalysisResult, error) {
	fb, err := s.store.Get(ctx, id)
	if err != nil {
		return AnalysisResult{}, err
	}

	key := CacheKey("recs", fb.Category, fb.ProductName, string(fb.Sentiment), string(fb.Urgency),
		strings.Join(fb.Tags, ","), strings.Join(fb.Keywords, ","))

	var products []models.Product
	hit, err := s.cache.Get(ctx, key, &products)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("recommendation cache read failed")
	}
	if !hit || len(products) == 0 {
		var generated bool
		products, generated = s.ai.GenerateProductRecommendations(ctx, fb)
		// Catalogue answers are not cached so a recovered model is asked again.
		if generated {
			if err := s.cache.Set(ctx, key, products, s.cacheTTL); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("recommendation cache write failed")
			}
		}
	}

	return AnalysisResult{
		Feedback:        fb,
		Analysis:        fb.Analysis(),
		RelatedProducts: products,
	}, nil
}

// List returns stored feedback for the admin table.
func (s *FeedbackService) List(ctx context.Context, f store.Filter) ([]models.Feedback, error) {
	return s.store.List(ctx, f)
}

// newID returns an unused 13-character base36 id.
func (s *FeedbackService) newID(ctx context.Context) (string, error) {
	for range 5 {
		id := randomID()
		if _, err := s.store.Get(ctx, id); errors.Is(err, store.ErrNotFound) {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a unique feedback id")
}

func randomID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	if len(s) < feedbackIDLength {
		s = strings.Repeat("0", feedbackIDLength-len(s)) + s
	}
	return s[len(s)-feedbackIDLength:]
}
