package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/pkg/clientip"
)

const (
	// SubmitWindow is the counting window for feedback submissions per IP.
	SubmitWindow = 120 * time.Second
	// RateLimitKeyPrefix is the Redis key prefix for submission counters
	RateLimitKeyPrefix = "ratelimit:submit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked after exceeding the limit.
	BlockedIPDuration = time.Hour
)

// APIRateLimit limits each IP to perMinute requests on the JSON API.
func APIRateLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return clientip.LimitKey(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, errorBody{
				Message:    "Too many requests. Please slow down.",
				RetryAfter: 60,
			})
		}),
	)
}

// SubmissionLimiter counts POSTs per IP in Redis so the limit holds across
// replicas. Redis errors let the request through.
type SubmissionLimiter struct {
	client *redis.Client
	max    int
}

func NewSubmissionLimiter(client *redis.Client, max int) *SubmissionLimiter {
	if max <= 0 {
		max = 25
	}
	return &SubmissionLimiter{client: client, max: max}
}

// Middleware applies the limit to POST requests only.
func (l *SubmissionLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l == nil || l.client == nil || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := clientip.LimitKey(r)

		blockedKey := BlockedIPKeyPrefix + ip
		blocked, err := l.client.Exists(ctx, blockedKey).Result()
		if err == nil && blocked > 0 {
			writeError(w, http.StatusTooManyRequests, errorBody{
				Message: "Your IP has been temporarily blocked due to excessive submissions. Please try again later.",
			})
			return
		}

		key := RateLimitKeyPrefix + ip
		count, err := l.hit(ctx, key)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("submission limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(l.max) {
			if err := l.client.Set(ctx, blockedKey, "1", BlockedIPDuration).Err(); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("ip", ip).Msg("failed to record blocked ip")
			}
			logging.Ctx(ctx).Warn().Str("ip", ip).Int64("count", count).Msg("submission limit exceeded")
			writeError(w, http.StatusTooManyRequests, errorBody{
				Message:    "Rate limit exceeded. Please try again later.",
				RetryAfter: int(SubmitWindow.Seconds()),
			})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(l.max)-count, 10))
		next.ServeHTTP(w, r)
	})
}

// hit increments the window counter and gives it a TTL in one transaction.
// ExpireNX also repairs a counter left without a TTL.
func (l *SubmissionLimiter) hit(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, SubmitWindow)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count submission: %w", err)
	}
	return incr.Val(), nil
}
