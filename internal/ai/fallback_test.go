package ai

import (
	"reflect"
	"testing"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

func TestFallbackAnalysis(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Analysis
	}{
		{
			name: "positive with usability",
			text: "I love this air fryer, it is so easy to clean and cooks evenly",
			want: models.Analysis{
				Sentiment: models.SentimentPositive,
				Keywords:  []string{"fryer,", "clean", "cooks", "evenly"},
				Tags:      []string{"usability"},
				Urgency:   models.UrgencyLow,
			},
		},
		{
			name: "negative with urgent word",
			text: "The plug is broken and sparks, this is a safety problem",
			want: models.Analysis{
				Sentiment: models.SentimentNegative,
				Keywords:  []string{"broken", "sparks,", "safety", "problem"},
				Tags:      []string{"general"},
				Urgency:   models.UrgencyHigh,
			},
		},
		{
			name: "negative without urgent word",
			text: "Terrible suction and very loud and not worth the price",
			want: models.Analysis{
				Sentiment: models.SentimentNegative,
				Keywords:  []string{"terrible", "suction", "worth", "price"},
				Tags:      []string{"noise", "value"},
				Urgency:   models.UrgencyMedium,
			},
		},
		{
			name: "tie is neutral",
			text: "good product but one issue",
			want: models.Analysis{
				Sentiment: models.SentimentNeutral,
				Keywords:  []string{"product", "issue"},
				Tags:      []string{"general"},
				Urgency:   models.UrgencyLow,
			},
		},
		{
			name: "substring scoring and exact tag match",
			text: "Goodness, fast fast FAST and sturdy",
			want: models.Analysis{
				Sentiment: models.SentimentPositive,
				Keywords:  []string{"goodness,", "sturdy"},
				Tags:      []string{"performance", "durability"},
				Urgency:   models.UrgencyLow,
			},
		},
		{
			name: "empty text",
			text: "   ",
			want: models.Analysis{
				Sentiment: models.SentimentNeutral,
				Keywords:  []string{},
				Tags:      []string{"general"},
				Urgency:   models.UrgencyLow,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackAnalysis(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FallbackAnalysis() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

func TestFallbackUrgentWordNeedsExactMatch(t *testing.T) {
	// "broken." keeps its punctuation so it is not an urgency word.
	got := FallbackAnalysis("It arrived broken.")
	if got.Sentiment != models.SentimentNegative {
		t.Fatalf("Sentiment = %s", got.Sentiment)
	}
	if got.Urgency != models.UrgencyMedium {
		t.Errorf("Urgency = %s, want Medium", got.Urgency)
	}
}

func TestFallbackKeywordsCapAndDedupe(t *testing.T) {
	got := FallbackAnalysis("alpha12 alpha12 bravo12 charlie delta12 echo123 foxtrot")
	want := []string{"alpha12", "bravo12", "charlie", "delta12"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", got.Keywords, want)
	}
}

func TestFallbackKeywordLengthCountsUTF16Units(t *testing.T) {
	// "ok😀😀" is four runes but six UTF-16 units; "😀😀" is four units.
	got := FallbackAnalysis("ok😀😀 😀😀 ñandú café")
	want := []string{"ok😀😀", "ñandú"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", got.Keywords, want)
	}
}

func TestUTF16Len(t *testing.T) {
	tests := map[string]int{
		"":      0,
		"fryer": 5,
		"ñandú": 5,
		"😀":     2,
		"a😀b":   4,
	}
	for in, want := range tests {
		if got := utf16Len(in); got != want {
			t.Errorf("utf16Len(%q) = %d, want %d", in, got, want)
		}
	}
}
