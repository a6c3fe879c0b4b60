// Package llm talks to hosted chat models behind one small interface.
package llm

import (
	"context"
	"errors"
)

// Role names who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is a single chat completion call.
type Request struct {
	Messages []Message
	// JSON asks the provider for a JSON response where it supports it.
	JSON        bool
	Temperature float64
	MaxTokens   int
}

// Response is the model's text output.
type Response struct {
	Text       string
	TokensUsed int
}

// ChatModel is implemented by every provider and by the resilient wrapper.
type ChatModel interface {
	Chat(ctx context.Context, req Request) (Response, error)
	Name() string
}

// ErrNoModel is returned by Disabled for every call.
var ErrNoModel = errors.New("no language model configured")

// Disabled is used when no provider credentials are available. Callers fall
// back to their local heuristics.
type Disabled struct{}

func (Disabled) Chat(context.Context, Request) (Response, error) { return Response{}, ErrNoModel }
func (Disabled) Name() string                                    { return "none" }

// UserPrompt builds a request with a single user message.
func UserPrompt(prompt string, jsonOut bool) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		JSON:        jsonOut,
		Temperature: 0.2,
		MaxTokens:   1024,
	}
}

// splitSystem separates system messages, which several SDKs take as a
// dedicated field, from the conversation turns.
func splitSystem(msgs []Message) (string, []Message) {
	var system string
	turns := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}
