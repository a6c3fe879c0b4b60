package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGoogleModel = "gemini-1.5-flash"

// Google calls the Gemini API.
type Google struct {
	client *genai.Client
	model  string
}

func NewGoogle(ctx context.Context, apiKey, model string) (*Google, error) {
	if apiKey == "" {
		return nil, errors.New("google: API key cannot be empty")
	}
	if model == "" {
		model = DefaultGoogleModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}
	return &Google{client: client, model: model}, nil
}

func (g *Google) Name() string { return "google" }

// Close releases the underlying gRPC connection.
func (g *Google) Close() error {
	return g.client.Close()
}

func (g *Google) Chat(ctx context.Context, req Request) (Response, error) {
	system, turns := splitSystem(req.Messages)

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	parts := make([]genai.Part, 0, len(turns))
	for _, m := range turns {
		parts = append(parts, genai.Text(m.Content))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return Response{}, Classify(g.Name(), err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Response{}, emptyResponse(g.Name())
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return Response{}, emptyResponse(g.Name())
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return Response{Text: sb.String(), TokensUsed: tokens}, nil
}
