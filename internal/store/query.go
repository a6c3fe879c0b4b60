package store

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/models"
)

const dateLayout = "2006-01-02"

// ParseFilter reads admin list filters from a query string. "all" or an
// empty value leaves a field unconstrained. Dates are YYYY-MM-DD in UTC and
// endDate covers the whole day.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter

	if c := param(q, "category"); c != "" {
		f.Category = c
	}
	if s := param(q, "sentiment"); s != "" {
		sentiment, ok := models.ParseSentiment(s)
		if !ok {
			return Filter{}, fmt.Errorf("invalid sentiment %q", s)
		}
		f.Sentiment = sentiment
	}

	var err error
	if f.MinRating, err = ratingParam(q, "minRating"); err != nil {
		return Filter{}, err
	}
	if f.MaxRating, err = ratingParam(q, "maxRating"); err != nil {
		return Filter{}, err
	}

	if s := param(q, "startDate"); s != "" {
		if f.StartDate, err = time.Parse(dateLayout, s); err != nil {
			return Filter{}, fmt.Errorf("invalid startDate %q", s)
		}
	}
	if s := param(q, "endDate"); s != "" {
		end, err := time.Parse(dateLayout, s)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid endDate %q", s)
		}
		f.EndDate = end.Add(24*time.Hour - time.Nanosecond)
	}

	f.Search = strings.TrimSpace(q.Get("q"))
	if f.Search == "" {
		f.Search = strings.TrimSpace(q.Get("search"))
	}
	return f, nil
}

func param(q url.Values, key string) string {
	v := strings.TrimSpace(q.Get(key))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func ratingParam(q url.Values, key string) (int, error) {
	s := param(q, key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}
