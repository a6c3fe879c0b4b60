package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error codes carried by ProviderError.
const (
	CodeTimeout     = "timeout"
	CodeCanceled    = "canceled"
	CodeRateLimited = "rate_limited"
	CodeAuth        = "invalid_api_key"
	CodeQuota       = "quota_exceeded"
	CodeServer      = "server_error"
	CodeNetwork     = "network_error"
	CodeEmpty       = "empty_response"
	CodeUnknown     = "unknown"
)

// ProviderError is the normalised failure of a provider call.
type ProviderError struct {
	Provider  string
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Classify maps any provider error onto a ProviderError. SDK error types differ
// per vendor, so classification works on the rendered message.
func Classify(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	wrap := func(code string, retryable bool) *ProviderError {
		return &ProviderError{Provider: provider, Code: code, Message: err.Error(), Retryable: retryable, Err: err}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return wrap(CodeCanceled, false)
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(CodeTimeout, true)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "insufficient_quota", "quota", "billing"):
		return wrap(CodeQuota, false)
	case containsAny(msg, "rate limit", "rate_limit", "429", "too many requests", "resource_exhausted", "overloaded"):
		return wrap(CodeRateLimited, true)
	case containsAny(msg, "invalid api key", "incorrect api key", "invalid_api_key", "401", "403", "unauthorized", "authentication", "permission"):
		return wrap(CodeAuth, false)
	case containsAny(msg, "500", "502", "503", "504", "529", "internal server error", "bad gateway", "service unavailable", "gateway timeout"):
		return wrap(CodeServer, true)
	case containsAny(msg, "connection refused", "connection reset", "no such host", "eof", "i/o timeout", "tls handshake"):
		return wrap(CodeNetwork, true)
	case containsAny(msg, "timeout", "deadline exceeded"):
		return wrap(CodeTimeout, true)
	}
	return wrap(CodeUnknown, false)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func emptyResponse(provider string) *ProviderError {
	return &ProviderError{Provider: provider, Code: CodeEmpty, Message: "model returned no content"}
}
