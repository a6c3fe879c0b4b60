package models

type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type CategoryShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

type UrgencyBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	TotalFeedback      int                `json:"totalFeedback"`
	AverageRating      float64            `json:"averageRating"`
	SentimentBreakdown SentimentBreakdown `json:"sentimentBreakdown"`
	CategoryBreakdown  []CategoryShare    `json:"categoryBreakdown"`
	UrgencyBreakdown   UrgencyBreakdown   `json:"urgencyBreakdown"`
	MonthlyTrends      []MonthlyCount     `json:"monthlyTrends"`
}
