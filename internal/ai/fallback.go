package ai

import (
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

var (
	positiveWords = []string{"love", "great", "excellent", "good", "amazing", "easy", "perfect"}
	negativeWords = []string{"bad", "poor", "terrible", "disappointed", "issue", "problem", "broken"}
	urgentWords   = []string{"immediately", "urgent", "dangerous", "safety", "hazard", "broken"}
)

// tagBuckets is evaluated in order; a bucket matches on an exact word.
var tagBuckets = []struct {
	tag   string
	words []string
}{
	{"performance", []string{"slow", "fast", "efficient", "inefficient", "performance"}},
	{"durability", []string{"durable", "broke", "lasting", "sturdy", "fragile"}},
	{"usability", []string{"easy", "difficult", "intuitive", "confusing", "user-friendly"}},
	{"noise", []string{"quiet", "loud", "noisy", "silent", "sound"}},
	{"value", []string{"expensive", "cheap", "worth", "value", "price", "cost"}},
}

const (
	maxFallbackKeywords = 4
	// Keyword length is counted in UTF-16 code units, so an emoji counts as two.
	minKeywordUnits = 5
)

// FallbackAnalysis classifies text with fixed word lists. Words are the
// whitespace-separated tokens of the lowercased text, punctuation included.
func FallbackAnalysis(text string) models.Analysis {
	words := strings.Fields(strings.ToLower(text))

	var positive, negative int
	for _, w := range words {
		if containsAnySubstring(w, positiveWords) {
			positive++
		}
		if containsAnySubstring(w, negativeWords) {
			negative++
		}
	}

	sentiment := models.SentimentNeutral
	switch {
	case positive > negative:
		sentiment = models.SentimentPositive
	case negative > positive:
		sentiment = models.SentimentNegative
	}

	keywords := make([]string, 0, maxFallbackKeywords)
	for _, w := range words {
		if len(keywords) == maxFallbackKeywords {
			break
		}
		if utf16Len(w) >= minKeywordUnits && !slices.Contains(keywords, w) {
			keywords = append(keywords, w)
		}
	}

	var tags []string
	for _, b := range tagBuckets {
		if anyWordIn(words, b.words) {
			tags = append(tags, b.tag)
		}
	}
	if len(tags) == 0 {
		tags = []string{"general"}
	}

	urgency := models.UrgencyLow
	if sentiment == models.SentimentNegative {
		urgency = models.UrgencyMedium
		if anyWordIn(words, urgentWords) {
			urgency = models.UrgencyHigh
		}
	}

	return models.Analysis{
		Sentiment: sentiment,
		Keywords:  keywords,
		Tags:      tags,
		Urgency:   urgency,
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func containsAnySubstring(word string, list []string) bool {
	for _, s := range list {
		if strings.Contains(word, s) {
			return true
		}
	}
	return false
}

func anyWordIn(words, list []string) bool {
	for _, w := range words {
		if slices.Contains(list, w) {
			return true
		}
	}
	return false
}
