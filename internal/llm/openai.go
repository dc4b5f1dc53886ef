package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// openaiProvider also serves OpenRouter and any other API that speaks the
// OpenAI chat completions protocol.
type openaiProvider struct {
	client *openai.Client
	model  string
}

func newOpenAI(b Backend, model string) *openaiProvider {
	cfg := openai.DefaultConfig(b.APIKey)
	if b.BaseURL != "" {
		cfg.BaseURL = b.BaseURL
	}
	return &openaiProvider{client: openai.NewClientWithConfig(cfg), model: model}
}

// newOpenRouter uses model ids as given; OpenRouter names them
// "vendor/model".
func newOpenRouter(b Backend) *openaiProvider {
	if b.BaseURL == "" {
		b.BaseURL = openRouterURL
	}
	return newOpenAI(b, b.Model)
}

func (p *openaiProvider) ModelID() string { return p.model }

func (p *openaiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		Messages:            make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("encode schema %q: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, openaiError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("reply has no choices")}
	}
	choice := resp.Choices[0]
	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	return reply(req, choice.Message.Content, resp.Model, stopReason(string(choice.FinishReason)), usage)
}

func openaiError(err error) error {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
	)
	switch {
	case errors.As(err, &apiErr):
		return classify(apiErr.HTTPStatusCode, nil, err)
	case errors.As(err, &reqErr):
		return classify(reqErr.HTTPStatusCode, nil, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
