package web

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/AnshRaj112/feedbackhub-backend/internal/ai"
	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
)

var productSources = []string{models.SourcePhilips, models.SourceAmazon, models.SourceFlipkart}

// Confirmation renders the analysis of a stored submission. source narrows
// the product cards to one store; empty shows all.
func Confirmation(res services.AnalysisResult, source string) templ.Component {
	return layout("Feedback Analysis", component(func(ctx context.Context, h *htmlWriter) {
		fb := res.Feedback
		a := res.Analysis

		h.raw(`<div class="card"><h1>Feedback Analysis</h1><p>Thank you. Your feedback has been recorded.</p>`)
		h.raw(`<h2>Product Information</h2><table>`)
		h.rawf(`<tr><th>Category:</th><td>%s</td></tr>`, esc(fb.Category))
		h.rawf(`<tr><th>Product:</th><td>%s</td></tr>`, esc(fb.ProductName))
		h.rawf(`<tr><th>Rating:</th><td>%s</td></tr></table>`, stars(fb.Rating))
		h.rawf(`<h2>Your Feedback</h2><p>%s</p></div>`, esc(fb.Feedback))

		h.raw(`<div class="card"><h2>AI Analysis</h2>`)
		h.raw(`<p>Sentiment: `)
		badge(h, string(a.Sentiment), string(a.Sentiment))
		h.raw(` Urgency: `)
		badge(h, string(a.Urgency), string(a.Urgency))
		h.raw(`</p><h3>Extracted Keywords &amp; Tags</h3><p>`)
		for _, k := range a.Keywords {
			badge(h, "keyword", k)
		}
		for _, t := range a.Tags {
			badge(h, "tag", "#"+t)
		}
		h.raw(`</p></div>`)

		h.raw(`<div class="card"><h2>Explore Related Philips Products</h2><p>`)
		base := "/confirmation?id=" + esc(fb.ID)
		h.rawf(`<a href="%s">All</a>`, base)
		for _, s := range productSources {
			h.rawf(` | <a href="%s&amp;source=%s">%s</a>`, base, esc(s), esc(s))
		}
		h.raw(`</p><div class="grid">`)
		for _, p := range res.RelatedProducts {
			if source != "" && !strings.EqualFold(p.Source, source) {
				continue
			}
			h.child(ctx, productCard(p))
		}
		h.raw(`</div></div>`)

		h.raw(`<p><a href="/feedback">Submit Another Feedback</a> | <a href="/">Return to Home</a></p>`)
	}))
}

func productCard(p models.Product) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		link := p.Link
		if link == "" {
			link = ai.ProductLink(p.Source, p.Title)
		}
		h.raw(`<div class="card product">`)
		h.rawf(`<img src="%s" alt="%s" loading="lazy">`, esc(string(templ.URL(p.Image))), esc(p.Title))
		h.rawf(`<h3>%s</h3><p><strong>%s</strong></p>`, esc(p.Title), esc(p.Price))
		badge(h, "source", p.Source)
		h.rawf(`<p><a href="%s" target="_blank" rel="noopener noreferrer">View on %s</a></p>`,
			esc(string(templ.URL(link))), esc(p.Source))
		h.raw(`</div>`)
	})
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("&#9733;", n) + strings.Repeat("&#9734;", 5-n)
}

// Message renders a simple page with a heading and one paragraph.
func Message(title, text string) templ.Component {
	return layout(title, component(func(_ context.Context, h *htmlWriter) {
		h.rawf(`<div class="card"><h1>%s</h1><p>%s</p><p><a href="/feedback">Return to the feedback form</a></p></div>`,
			esc(title), esc(text))
	}))
}
