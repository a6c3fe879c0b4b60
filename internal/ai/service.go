// Package ai turns free-text feedback into an analysis, an English
// translation and product recommendations. Every operation degrades to a
// local answer when the chat model is unavailable.
package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/AnshRaj112/feedbackhub-backend/internal/catalog"
	"github.com/AnshRaj112/feedbackhub-backend/internal/llm"
	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

const (
	maxKeywords        = 5
	maxTags            = 4
	maxRecommendations = 6
)

type Service struct {
	model   llm.ChatModel
	catalog *catalog.Catalog
}

func NewService(model llm.ChatModel, cat *catalog.Catalog) *Service {
	if model == nil {
		model = llm.Disabled{}
	}
	return &Service{model: model, catalog: cat}
}

// ModelName reports the provider in use, "none" when disabled.
func (s *Service) ModelName() string { return s.model.Name() }

const analyzePrompt = `Analyze the following customer feedback for a Philips product and return a JSON object with these properties:
- sentiment: the overall sentiment (Positive, Neutral or Negative)
- keywords: an array of 3-5 key phrases or words taken from the feedback
- tags: an array of 2-4 issue categories or aspects mentioned (for example durability, performance, usability, value)
- urgency: priority level (High, Medium or Low) based on how severe the reported issues are

Product Category: %s
Product Name: %s
Feedback: %q

Return ONLY a valid JSON object with no additional text or explanation.`

type analysisReply struct {
	Sentiment string   `json:"sentiment"`
	Keywords  []string `json:"keywords"`
	Tags      []string `json:"tags"`
	Urgency   string   `json:"urgency"`
}

// AnalyzeFeedback asks the model to classify text and falls back to the
// keyword heuristic on any failure. Reported hazards always force High
// urgency and the safety tag.
func (s *Service) AnalyzeFeedback(ctx context.Context, category, productName, text string) models.Analysis {
	var analysis models.Analysis
	resp, err := s.model.Chat(ctx, llm.UserPrompt(fmt.Sprintf(analyzePrompt, category, productName, text), true))
	if err == nil {
		analysis, err = parseAnalysis(resp.Text)
	}
	if err != nil {
		analysis = s.fallbackAnalysis(ctx, text, err)
	}

	analysis, hazards := escalateHazards(analysis, text)
	if len(hazards) > 0 {
		metrics.SafetyReports.WithLabelValues(category).Inc()
		logging.Ctx(ctx).Warn().Strs("hazards", hazards).Str("category", category).Str("product", productName).
			Msg("feedback reports a safety hazard")
	}
	return analysis
}

func parseAnalysis(text string) (models.Analysis, error) {
	raw, err := extractJSON(text, '{', '}')
	if err != nil {
		return models.Analysis{}, err
	}
	var reply analysisReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return models.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	sentiment, ok := models.ParseSentiment(reply.Sentiment)
	if !ok {
		return models.Analysis{}, fmt.Errorf("invalid sentiment %q", reply.Sentiment)
	}
	urgency, ok := models.ParseUrgency(reply.Urgency)
	if !ok {
		return models.Analysis{}, fmt.Errorf("invalid urgency %q", reply.Urgency)
	}
	return models.Analysis{
		Sentiment: sentiment,
		Keywords:  cleanList(reply.Keywords, maxKeywords),
		Tags:      cleanList(reply.Tags, maxTags),
		Urgency:   urgency,
	}, nil
}

func (s *Service) fallbackAnalysis(ctx context.Context, text string, cause error) models.Analysis {
	metrics.FallbackTotal.WithLabelValues("analyze").Inc()
	logging.Ctx(ctx).Warn().Err(cause).Str("model", s.model.Name()).Msg("feedback analysis using keyword fallback")
	return FallbackAnalysis(text)
}

const translatePrompt = `Detect the language of the following text. If it is not English, translate it to English.
If it is already English, return the original text unchanged.

Text: %q

Return ONLY the translated text (or the original if already English) with no additional explanation.`

// TranslateToEnglish returns text in English, or text unchanged if the model
// cannot help.
func (s *Service) TranslateToEnglish(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	resp, err := s.model.Chat(ctx, llm.UserPrompt(fmt.Sprintf(translatePrompt, text), false))
	if err != nil {
		metrics.FallbackTotal.WithLabelValues("translate").Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("translation skipped, keeping original text")
		return text
	}
	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		return text
	}
	return translated
}

const recommendPrompt = `Based on the following customer feedback for a Philips product, suggest %d related products that might interest the customer.
Return a JSON object with a "products" array. Each product has:
- id: a unique string identifier
- title: a realistic Philips product name
- price: the price in Indian Rupees (₹)
- source: where to buy it, one of "Philips", "Amazon" or "Flipkart"

Make the recommendations relevant: if issues were mentioned, suggest better alternatives.
If the customer liked the product, suggest complementary products or accessories.

Product Category: %s
Product Name: %s
Sentiment: %s
Tags: %s
Feedback: %q

Return ONLY valid JSON with no additional text or explanation.`

type productReply struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Price  json.RawMessage `json:"price"`
	Source string          `json:"source"`
}

// GenerateProductRecommendations asks the model for related products and
// falls back to the catalogue for the category. generated is false when the
// catalogue answered.
func (s *Service) GenerateProductRecommendations(ctx context.Context, fb models.Feedback) (products []models.Product, generated bool) {
	prompt := fmt.Sprintf(recommendPrompt, maxRecommendations, fb.Category, fb.ProductName,
		fb.Sentiment, strings.Join(fb.Tags, ", "), fb.Feedback)

	resp, err := s.model.Chat(ctx, llm.UserPrompt(prompt, true))
	if err != nil {
		return s.fallbackProducts(ctx, fb.Category, err), false
	}
	products, err = s.parseProducts(resp.Text)
	if err != nil {
		return s.fallbackProducts(ctx, fb.Category, err), false
	}
	return products, true
}

func (s *Service) parseProducts(text string) ([]models.Product, error) {
	var items []productReply

	// JSON mode forces an object; older prompts and some providers answer with
	// a bare array.
	if raw, err := extractJSON(text, '{', '}'); err == nil && strings.Index(text, "{") < indexOrMax(text, "[") {
		var wrapper struct {
			Products []productReply `json:"products"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		items = wrapper.Products
	} else {
		raw, err := extractJSON(text, '[', ']')
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	}

	out := make([]models.Product, 0, maxRecommendations)
	for i, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		id := strings.TrimSpace(it.ID)
		if id == "" {
			id = "p" + strconv.Itoa(i+1)
		}
		source := NormalizeSource(it.Source)
		out = append(out, models.Product{
			ID:     id,
			Title:  title,
			Price:  formatPrice(it.Price),
			Image:  s.imageFor(title),
			Link:   ProductLink(source, title),
			Source: source,
		})
		if len(out) == maxRecommendations {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model returned no usable products")
	}
	return out, nil
}

func (s *Service) fallbackProducts(ctx context.Context, category string, cause error) []models.Product {
	metrics.FallbackTotal.WithLabelValues("recommend").Inc()
	logging.Ctx(ctx).Warn().Err(cause).Str("category", category).Msg("recommendations using catalog fallback")
	return s.catalog.Recommendations(category)
}

func (s *Service) imageFor(title string) string {
	if s.catalog == nil {
		return catalog.DefaultPlaceholderImage
	}
	return s.catalog.ImageFor(title)
}

// formatPrice accepts a number of rupees or a display string and always
// returns a ₹-prefixed string.
func formatPrice(raw json.RawMessage) string {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return catalog.FormatINR(int(n))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "INR")
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "₹") {
		return s
	}
	return "₹" + s
}

func indexOrMax(s, sub string) int {
	if i := strings.Index(s, sub); i >= 0 {
		return i
	}
	return len(s) + 1
}
