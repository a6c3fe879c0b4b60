package ai

import (
	"net/url"
	"strings"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

// ProductLink returns a store search URL for title. Unknown sources search
// the Philips site.
func ProductLink(source, title string) string {
	q := encodeComponent(title)
	switch NormalizeSource(source) {
	case models.SourceAmazon:
		return "https://www.amazon.in/s?k=" + q
	case models.SourceFlipkart:
		return "https://www.flipkart.com/search?q=" + q
	default:
		return "https://www.philips.co.in/c-m-ho/search?q=" + q
	}
}

// componentUnescaper undoes QueryEscape where URI component encoding differs:
// spaces are %20 and the marks !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s the way browsers encode a URI component.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// NormalizeSource maps any casing of a known store to its canonical name and
// everything else to Philips.
func NormalizeSource(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "amazon":
		return models.SourceAmazon
	case "flipkart":
		return models.SourceFlipkart
	default:
		return models.SourcePhilips
	}
}
