package chatdesk

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompletionClient adapts the OpenAI chat completions API to the
// CompletionClient boundary.
type OpenAICompletionClient struct {
	client openai.Client
	model  openai.ChatModel
}

var _ CompletionClient = &OpenAICompletionClient{}

// NewOpenAICompletionClient builds a client for the given model. baseURL is
// optional and exists for gateways and test servers.
func NewOpenAICompletionClient(apiKey, baseURL, model string) *OpenAICompletionClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAICompletionClient{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
	}
}

// Complete sends the history verbatim, in order, and returns the text of the
// single generated message. Transport and service failures are returned
// directly; a 2xx response with no usable content wraps
// ErrMalformedCompletion so the manager can apply its fallback policy.
func (c *OpenAICompletionClient) Complete(ctx context.Context, history []Message) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: toCompletionParams(history),
		Model:    c.model,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrMalformedCompletion)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty message content", ErrMalformedCompletion)
	}
	return content, nil
}

func toCompletionParams(history []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(msg.Content))
		default:
			params = append(params, openai.UserMessage(msg.Content))
		}
	}
	return params
}
