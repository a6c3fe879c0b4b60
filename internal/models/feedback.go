package models

import (
	"strings"
	"time"
)

// Sentiment is the overall tone of a piece of feedback.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// ParseSentiment accepts any casing and reports whether the value is known.
func ParseSentiment(s string) (Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive, true
	case "neutral":
		return SentimentNeutral, true
	case "negative":
		return SentimentNegative, true
	}
	return "", false
}

// Urgency says how quickly someone should look at the feedback.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// ParseUrgency accepts any casing and reports whether the value is known.
func ParseUrgency(s string) (Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return UrgencyHigh, true
	case "medium":
		return UrgencyMedium, true
	case "low":
		return UrgencyLow, true
	}
	return "", false
}

// Categories lists the product categories offered on the feedback form.
var Categories = []string{
	"Kitchen Appliances",
	"Ironing",
	"Air Care",
	"Vacuum Cleaners",
	"Personal Care",
	"Others",
}

// Analysis is the classifier output attached to every feedback record.
type Analysis struct {
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords"`
	Tags      []string  `json:"tags"`
	Urgency   Urgency   `json:"urgency"`
}

type Feedback struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	ProductName  string    `json:"productName"`
	Feedback     string    `json:"feedback"`
	Rating       int       `json:"rating"`
	IsAnonymous  bool      `json:"isAnonymous"`
	ConsentGiven bool      `json:"consentGiven"`
	Sentiment    Sentiment `json:"sentiment"`
	Keywords     []string  `json:"keywords"`
	Tags         []string  `json:"tags"`
	Urgency      Urgency   `json:"urgency"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Analysis returns the derived fields of the record.
func (f Feedback) Analysis() Analysis {
	return Analysis{
		Sentiment: f.Sentiment,
		Keywords:  f.Keywords,
		Tags:      f.Tags,
		Urgency:   f.Urgency,
	}
}
