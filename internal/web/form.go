package web

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
)

const maxFeedbackChars = 5000

// FormState is what the form shows: previous values and field errors.
type FormState struct {
	Values services.SubmitRequest
	Errors map[string]string
	// Message is a page-level error such as a failed submission.
	Message string
}

// FeedbackForm renders the submission form.
func FeedbackForm(st FormState) templ.Component {
	return layout("Submit Your Feedback", component(func(_ context.Context, h *htmlWriter) {
		v := st.Values
		h.raw(`<div class="card"><h1>Submit Your Feedback</h1>`)
		h.raw(`<p>Help us improve Philips products with your valuable insights</p>`)
		if st.Message != "" {
			h.rawf(`<p class="error" role="alert">%s</p>`, esc(st.Message))
		}
		h.raw(`<form method="post" action="/feedback">`)

		h.raw(`<label for="category">Product Category</label><select id="category" name="category">`)
		h.raw(`<option value="">Select a category</option>`)
		for _, c := range models.Categories {
			h.rawf(`<option value="%s"%s>%s</option>`, esc(c), selected(c == v.Category), esc(c))
		}
		h.raw(`</select>`)
		fieldError(h, st.Errors, "category")

		h.rawf(`<label for="productName">Product Name</label><input type="text" id="productName" name="productName" maxlength="200" placeholder="e.g. Philips Air Fryer HD9252" value="%s">`, esc(v.ProductName))
		fieldError(h, st.Errors, "productName")

		h.raw(`<label>Product Rating</label><div class="stars">`)
		for i := 1; i <= 5; i++ {
			n := strconv.Itoa(i)
			h.rawf(`<label><input type="radio" name="rating" value="%s"%s> %s&#9733;</label>`, n, checked(v.Rating == i), n)
		}
		h.raw(`</div>`)
		fieldError(h, st.Errors, "rating")

		h.rawf(`<label for="feedback">Your Feedback</label><textarea id="feedback" name="feedback" rows="6" maxlength="%d" placeholder="Tell us about your experience. Any language is fine.">%s</textarea>`,
			maxFeedbackChars, esc(v.Feedback))
		h.rawf(`<small>%d/%d characters</small>`, len([]rune(v.Feedback)), maxFeedbackChars)
		fieldError(h, st.Errors, "feedback")

		h.rawf(`<label><input type="checkbox" name="isAnonymous"%s> Submit anonymously</label>`, checked(v.IsAnonymous))
		h.rawf(`<label><input type="checkbox" name="consentGiven"%s> I agree to the collection and analysis of my feedback</label>`, checked(v.ConsentGiven))
		fieldError(h, st.Errors, "consentGiven")

		h.raw(`<button type="submit">Submit Feedback</button></form></div>`)
	}))
}

func fieldError(h *htmlWriter, errs map[string]string, field string) {
	if msg, ok := errs[field]; ok {
		h.rawf(`<p class="error">%s</p>`, esc(msg))
	}
}

func selected(b bool) string {
	if b {
		return " selected"
	}
	return ""
}

func checked(b bool) string {
	if b {
		return " checked"
	}
	return ""
}
