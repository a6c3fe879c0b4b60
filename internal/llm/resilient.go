package llm

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
)

// ErrThrottled is returned when the local call budget is exhausted.
var ErrThrottled = errors.New("llm call budget exhausted")

// ResilientConfig tunes the wrapper around a provider.
type ResilientConfig struct {
	Timeout         time.Duration
	MaxRetries      uint64
	RatePerSecond   float64
	Burst           int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	// InitialBackoff is the first retry delay. Tests shorten it.
	InitialBackoff time.Duration
}

func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Timeout:         20 * time.Second,
		MaxRetries:      2,
		RatePerSecond:   3,
		Burst:           5,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
		InitialBackoff:  500 * time.Millisecond,
	}
}

// Resilient throttles, retries and circuit-breaks calls to another ChatModel.
type Resilient struct {
	next    ChatModel
	cfg     ResilientConfig
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[Response]
	tracer  trace.Tracer
}

func NewResilient(next ChatModel, cfg ResilientConfig) *Resilient {
	def := DefaultResilientConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}

	provider := next.Name()
	r := &Resilient{
		next:    next,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		tracer:  otel.Tracer("github.com/AnshRaj112/feedbackhub-backend/internal/llm"),
	}
	r.breaker = gobreaker.NewCircuitBreaker[Response](gobreaker.Settings{
		Name:        "llm-" + provider,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// Caller cancellation and local throttling say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrThrottled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.LLMBreakerState.WithLabelValues(provider).Set(breakerStateValue(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("LLM circuit breaker state changed")
		},
	})
	metrics.LLMBreakerState.WithLabelValues(provider).Set(0)
	return r
}

func (r *Resilient) Name() string { return r.next.Name() }

// State exposes the breaker state for health reporting.
func (r *Resilient) State() gobreaker.State { return r.breaker.State() }

// Close releases the wrapped provider when it holds a connection.
func (r *Resilient) Close() error {
	if c, ok := r.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *Resilient) Chat(ctx context.Context, req Request) (Response, error) {
	provider := r.next.Name()
	ctx, span := r.tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.Bool("llm.json", req.JSON),
	))
	defer span.End()

	start := time.Now()
	resp, err := r.breaker.Execute(func() (Response, error) {
		return r.callWithRetry(ctx, req)
	})
	metrics.LLMRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) || errors.Is(err, ErrThrottled) {
			outcome = "rejected"
		}
		metrics.LLMRequestsTotal.WithLabelValues(provider, outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return Response{}, err
	}

	metrics.LLMRequestsTotal.WithLabelValues(provider, "success").Inc()
	metrics.LLMTokensTotal.WithLabelValues(provider).Add(float64(resp.TokensUsed))
	span.SetAttributes(attribute.Int("llm.tokens", resp.TokensUsed))
	return resp, nil
}

func (r *Resilient) callWithRetry(ctx context.Context, req Request) (Response, error) {
	var out Response
	attempt := 0

	op := func() error {
		attempt++
		if !r.limiter.Allow() {
			// Waiting would hold a request open for a fallback answer anyway.
			return backoff.Permanent(ErrThrottled)
		}

		callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()

		resp, err := r.next.Chat(callCtx, req)
		if err != nil {
			perr := Classify(r.next.Name(), err)
			logging.Ctx(ctx).Debug().
				Err(err).
				Int("attempt", attempt).
				Str("code", perr.Code).
				Bool("retryable", perr.Retryable).
				Msg("LLM call failed")
			if !perr.Retryable || ctx.Err() != nil {
				return backoff.Permanent(perr)
			}
			return perr
		}
		out = resp
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.cfg.InitialBackoff
	eb.MaxInterval = 8 * r.cfg.InitialBackoff
	eb.MaxElapsedTime = 0

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(eb, r.cfg.MaxRetries), ctx)); err != nil {
		return Response{}, err
	}
	return out, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
