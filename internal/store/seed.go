package store

import (
	"context"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

// DemoFeedback returns the sample records shown on a fresh admin dashboard.
// Dates are spread over the days before now.
func DemoFeedback(now time.Time) []models.Feedback {
	day := 24 * time.Hour
	return []models.Feedback{
		{
			ID: "demo000000001", ProductName: "Philips Air Fryer HD9252", Category: "Kitchen Appliances",
			Rating: 4, Sentiment: models.SentimentPositive, Urgency: models.UrgencyLow,
			Feedback:  "Love this air fryer! It cooks evenly and is easy to clean.",
			Keywords:  []string{"cooks", "evenly", "clean"},
			Tags:      []string{"easy to use", "quick cooking", "energy efficient"},
			CreatedAt: now.Add(-1 * day), ConsentGiven: true,
		},
		{
			ID: "demo000000002", ProductName: "Philips Electric Shaver S5579/50", Category: "Personal Care",
			Rating: 3, Sentiment: models.SentimentNeutral, Urgency: models.UrgencyMedium,
			Feedback:  "Good shave quality but battery life could be improved. Overall satisfied with the purchase.",
			Keywords:  []string{"shave", "quality", "battery"},
			Tags:      []string{"battery life", "close shave", "price"},
			CreatedAt: now.Add(-2 * day), ConsentGiven: true,
		},
		{
			ID: "demo000000003", ProductName: "Philips Air Purifier AC2887", Category: "Air Care",
			Rating: 2, Sentiment: models.SentimentNegative, Urgency: models.UrgencyHigh,
			Feedback:  "The purifier works well but is quite noisy at higher settings. App frequently disconnects.",
			Keywords:  []string{"purifier", "noisy", "settings", "disconnects"},
			Tags:      []string{"noise level", "filter replacement", "app connectivity"},
			CreatedAt: now.Add(-3 * day), ConsentGiven: true,
		},
		{
			ID: "demo000000004", ProductName: "Philips Steam Iron GC1750", Category: "Ironing",
			Rating: 5, Sentiment: models.SentimentPositive, Urgency: models.UrgencyLow,
			Feedback:  "Excellent iron! Heats up quickly and glides smoothly over fabrics.",
			Keywords:  []string{"excellent", "heats", "glides"},
			Tags:      []string{"fast heating", "smooth gliding", "value for money"},
			CreatedAt: now.Add(-4 * day), ConsentGiven: true,
		},
		{
			ID: "demo000000005", ProductName: "Philips Vacuum Cleaner FC9352", Category: "Vacuum Cleaners",
			Rating: 1, Sentiment: models.SentimentNegative, Urgency: models.UrgencyHigh,
			Feedback:  "Very disappointed with the suction power. Makes a loud noise and doesn't pick up pet hair well.",
			Keywords:  []string{"disappointed", "suction", "power", "noise"},
			Tags:      []string{"suction power", "noise", "pet hair"},
			CreatedAt: now.Add(-5 * day), ConsentGiven: true,
		},
	}
}

// Seed saves every record into s.
func Seed(ctx context.Context, s Store, records []models.Feedback) error {
	for _, fb := range records {
		if err := s.Save(ctx, fb); err != nil {
			return err
		}
	}
	return nil
}
