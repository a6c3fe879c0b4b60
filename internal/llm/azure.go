package llm

import (
	"context"
	"errors"

	goopenai "github.com/sashabaranov/go-openai"
)

// Azure calls an Azure OpenAI deployment. The model name is mapped to the
// deployment name by the client.
type Azure struct {
	client *goopenai.Client
	model  string
}

func NewAzure(apiKey, endpoint, model string) (*Azure, error) {
	if apiKey == "" || endpoint == "" {
		return nil, errors.New("azure: API key and endpoint are required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := goopenai.DefaultAzureConfig(apiKey, endpoint)
	return &Azure{client: goopenai.NewClientWithConfig(cfg), model: model}, nil
}

func (a *Azure) Name() string { return "azure" }

func (a *Azure) Chat(ctx context.Context, req Request) (Response, error) {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := goopenai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case RoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	creq := goopenai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		creq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return Response{}, Classify(a.Name(), err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Response{}, emptyResponse(a.Name())
	}
	return Response{Text: resp.Choices[0].Message.Content, TokensUsed: resp.Usage.TotalTokens}, nil
}
