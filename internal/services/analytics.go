package services

import "github.com/AnshRaj112/feedbackhub-backend/internal/models"

// Analytics returns the dashboard summary. The figures are fixed sample
// numbers; no aggregation over stored feedback is performed.
func Analytics() models.Analytics {
	return models.Analytics{
		TotalFeedback: 1248,
		AverageRating: 4.2,
		SentimentBreakdown: models.SentimentBreakdown{
			Positive: 68,
			Neutral:  22,
			Negative: 10,
		},
		CategoryBreakdown: []models.CategoryShare{
			{Name: "Kitchen Appliances", Percentage: 32},
			{Name: "Personal Care", Percentage: 28},
			{Name: "Air Care", Percentage: 18},
			{Name: "Ironing", Percentage: 12},
			{Name: "Vacuum Cleaners", Percentage: 8},
			{Name: "Others", Percentage: 2},
		},
		UrgencyBreakdown: models.UrgencyBreakdown{
			High:   42,
			Medium: 156,
			Low:    1050,
		},
		MonthlyTrends: []models.MonthlyCount{
			{Month: "Nov", Count: 180},
			{Month: "Dec", Count: 220},
			{Month: "Jan", Count: 205},
			{Month: "Feb", Count: 190},
			{Month: "Mar", Count: 250},
			{Month: "Apr", Count: 280},
		},
	}
}
