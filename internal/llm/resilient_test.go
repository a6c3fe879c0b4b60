package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"

	"github.com/AnshRaj112/feedbackhub-backend/internal/config"
	"github.com/AnshRaj112/feedbackhub-backend/internal/metrics"
)

func fastConfig() ResilientConfig {
	return ResilientConfig{
		Timeout:         time.Second,
		MaxRetries:      2,
		RatePerSecond:   1000,
		Burst:           100,
		BreakerFailures: 5,
		BreakerTimeout:  time.Minute,
		InitialBackoff:  time.Millisecond,
	}
}

func TestResilientRetriesTransientErrors(t *testing.T) {
	mock := &MockChatModel{
		ModelName: "mock-retry",
		Errs:      []error{errors.New("503 service unavailable"), nil},
		Responses: []Response{{}, {Text: "ok", TokensUsed: 7}},
	}
	r := NewResilient(mock, fastConfig())

	resp, err := r.Chat(context.Background(), UserPrompt("hello", false))
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q, want ok", resp.Text)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", mock.CallCount())
	}
	if got := testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("mock-retry", "success")); got != 1 {
		t.Errorf("success counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.LLMTokensTotal.WithLabelValues("mock-retry")); got != 7 {
		t.Errorf("token counter = %v, want 7", got)
	}
}

func TestResilientDoesNotRetryPermanentErrors(t *testing.T) {
	mock := &MockChatModel{
		ModelName: "mock-auth",
		Errs:      []error{errors.New("401 unauthorized")},
	}
	r := NewResilient(mock, fastConfig())

	_, err := r.Chat(context.Background(), UserPrompt("hello", false))
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Code != CodeAuth {
		t.Errorf("Code = %q, want %q", perr.Code, CodeAuth)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestResilientBreakerOpens(t *testing.T) {
	mock := &MockChatModel{
		ModelName: "mock-breaker",
		Errs:      []error{errors.New("500 internal server error")},
	}
	cfg := fastConfig()
	cfg.MaxRetries = 0
	r := NewResilient(mock, cfg)

	for i := 0; i < 5; i++ {
		if _, err := r.Chat(context.Background(), UserPrompt("x", false)); err == nil {
			t.Fatalf("call %d succeeded", i)
		}
	}
	if r.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", r.State())
	}

	_, err := r.Chat(context.Background(), UserPrompt("x", false))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if mock.CallCount() != 5 {
		t.Errorf("CallCount() = %d, want 5", mock.CallCount())
	}
	if got := testutil.ToFloat64(metrics.LLMBreakerState.WithLabelValues("mock-breaker")); got != 2 {
		t.Errorf("breaker gauge = %v, want 2", got)
	}
}

func TestResilientThrottles(t *testing.T) {
	mock := &MockChatModel{ModelName: "mock-throttle", Responses: []Response{{Text: "ok"}}}
	cfg := fastConfig()
	cfg.RatePerSecond = 0.001
	cfg.Burst = 1
	r := NewResilient(mock, cfg)

	if _, err := r.Chat(context.Background(), UserPrompt("a", false)); err != nil {
		t.Fatalf("first call error = %v", err)
	}
	_, err := r.Chat(context.Background(), UserPrompt("b", false))
	if !errors.Is(err, ErrThrottled) {
		t.Fatalf("second call error = %v, want ErrThrottled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
	if r.State() != gobreaker.StateClosed {
		t.Errorf("throttling tripped the breaker")
	}
	if got := testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("mock-throttle", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{"none", config.Config{LLMProvider: "none"}, "none", false},
		{"openai without key", config.Config{LLMProvider: "openai"}, "none", false},
		{"openai", config.Config{LLMProvider: "openai", OpenAIAPIKey: "sk-test"}, "openai", false},
		{"anthropic", config.Config{LLMProvider: "anthropic", AnthropicAPIKey: "sk-ant"}, "anthropic", false},
		{"azure missing endpoint", config.Config{LLMProvider: "azure", AzureAPIKey: "k"}, "none", false},
		{"azure", config.Config{LLMProvider: "azure", AzureAPIKey: "k", AzureEndpoint: "https://example.openai.azure.com"}, "azure", false},
		{"unknown", config.Config{LLMProvider: "cohere"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewFromConfig(ctx, &tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if model.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", model.Name(), tt.wantName)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	if _, err := (Disabled{}).Chat(context.Background(), Request{}); !errors.Is(err, ErrNoModel) {
		t.Errorf("err = %v, want ErrNoModel", err)
	}
}
