package web

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

// AdminData feeds the dashboard.
type AdminData struct {
	Analytics models.Analytics
	Feedbacks []models.Feedback
	Query     url.Values
	// FilterError is shown above the table when the query could not be parsed.
	FilterError string
}

var sentimentOptions = []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative}

// AdminDashboard renders analytics cards, breakdowns and the feedback table.
func AdminDashboard(d AdminData) templ.Component {
	return layout("Feedback Analytics Dashboard", component(func(_ context.Context, h *htmlWriter) {
		a := d.Analytics
		h.raw(`<h1>Feedback Analytics Dashboard</h1>`)
		h.raw(`<p>Monitor and analyze customer feedback for Philips products</p>`)

		h.raw(`<div class="grid">`)
		statCard(h, "Total Feedback", strconv.Itoa(a.TotalFeedback))
		statCard(h, "Average Rating", strconv.FormatFloat(a.AverageRating, 'f', -1, 64)+" / 5")
		statCard(h, "Positive Sentiment", strconv.Itoa(a.SentimentBreakdown.Positive)+"%")
		statCard(h, "High Urgency", strconv.Itoa(a.UrgencyBreakdown.High))
		h.raw(`</div>`)

		h.raw(`<div class="grid">`)
		h.raw(`<div class="card"><h2>Sentiment Distribution</h2><p>Breakdown of feedback sentiment</p><table>`)
		h.rawf(`<tr><td>Positive</td><td>%d%%</td></tr>`, a.SentimentBreakdown.Positive)
		h.rawf(`<tr><td>Neutral</td><td>%d%%</td></tr>`, a.SentimentBreakdown.Neutral)
		h.rawf(`<tr><td>Negative</td><td>%d%%</td></tr></table></div>`, a.SentimentBreakdown.Negative)

		h.raw(`<div class="card"><h2>Feedback by Category</h2><p>Distribution across product categories</p><table>`)
		for _, c := range a.CategoryBreakdown {
			h.rawf(`<tr><td>%s</td><td>%d%%</td></tr>`, esc(c.Name), c.Percentage)
		}
		h.raw(`</table></div>`)

		h.raw(`<div class="card"><h2>Urgency</h2><table>`)
		h.rawf(`<tr><td>High</td><td>%d</td></tr>`, a.UrgencyBreakdown.High)
		h.rawf(`<tr><td>Medium</td><td>%d</td></tr>`, a.UrgencyBreakdown.Medium)
		h.rawf(`<tr><td>Low</td><td>%d</td></tr></table></div>`, a.UrgencyBreakdown.Low)

		h.raw(`<div class="card"><h2>Feedback Volume Trends</h2><p>Monthly feedback volume</p><table>`)
		for _, m := range a.MonthlyTrends {
			h.rawf(`<tr><td>%s</td><td>%d</td></tr>`, esc(m.Month), m.Count)
		}
		h.raw(`</table></div></div>`)

		h.raw(`<div class="card"><h2>Recent Feedback</h2><p>Browse and filter the latest customer feedback</p>`)
		h.raw(`<form method="get" action="/admin">`)
		h.rawf(`<input type="text" name="q" placeholder="Search product or feedback" value="%s">`, esc(d.Query.Get("q")))
		h.raw(`<select name="category"><option value="all">All Categories</option>`)
		for _, c := range models.Categories {
			h.rawf(`<option value="%s"%s>%s</option>`, esc(c), selected(c == d.Query.Get("category")), esc(c))
		}
		h.raw(`</select><select name="sentiment"><option value="all">All Sentiments</option>`)
		for _, s := range sentimentOptions {
			h.rawf(`<option value="%s"%s>%s</option>`, esc(string(s)), selected(strings.EqualFold(string(s), d.Query.Get("sentiment"))), esc(string(s)))
		}
		h.raw(`</select><button type="submit">Filter</button></form>`)

		if d.FilterError != "" {
			h.rawf(`<p class="error">%s</p>`, esc(d.FilterError))
		}

		h.raw(`<table><thead><tr><th>Date</th><th>Category</th><th>Product</th><th>Rating</th><th>Sentiment</th><th>Urgency</th><th>Feedback</th></tr></thead><tbody>`)
		if len(d.Feedbacks) == 0 {
			h.raw(`<tr><td colspan="7">No feedback matches the current filters.</td></tr>`)
		}
		for _, fb := range d.Feedbacks {
			h.rawf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				fb.CreatedAt.Format("2006-01-02"), esc(fb.Category), esc(fb.ProductName), stars(fb.Rating))
			badge(h, string(fb.Sentiment), string(fb.Sentiment))
			h.raw(`</td><td>`)
			badge(h, string(fb.Urgency), string(fb.Urgency))
			h.rawf(`</td><td>%s`, esc(truncate(fb.Feedback, 160)))
			for _, t := range fb.Tags {
				badge(h, "tag", "#"+t)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div>`)
	}))
}

func statCard(h *htmlWriter, label, value string) {
	h.rawf(`<div class="card"><p>%s</p><h2>%s</h2></div>`, esc(label), esc(value))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
