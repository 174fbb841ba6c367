package llm

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultLMStudioBaseURL = "http://localhost:1234/v1"

// LMStudioClient talks to LM Studio's OpenAI-compatible server.
type LMStudioClient struct {
	client      openai.Client
	model       string
	baseURL     string
	temperature float64
}

// NewLMStudioClient creates a client for s.Model. The API key comes from
// LMSTUDIO_API_KEY or OPENAI_API_KEY; LM Studio accepts any key by default.
func NewLMStudioClient(s Settings) (*LMStudioClient, error) {
	model := strings.TrimSpace(s.Model)
	if model == "" {
		return nil, fmt.Errorf("lm studio: %w", ErrModelRequired)
	}
	baseURL := cmp.Or(s.BaseURL, defaultLMStudioBaseURL)
	apiKey := cmp.Or(os.Getenv("LMSTUDIO_API_KEY"), os.Getenv("OPENAI_API_KEY"), "lm-studio")

	return &LMStudioClient{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
		),
		model:       model,
		baseURL:     baseURL,
		temperature: s.temperature(),
	}, nil
}

// Chat sends messages to the model and returns its reply.
func (c *LMStudioClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return completion(ctx, c.client, c.model, c.temperature, messages, "lm studio")
}

// ChatJSON decodes the JSON document in the model's reply into result.
func (c *LMStudioClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	reply, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeReply(reply, result)
}

// completion runs one chat completion on an OpenAI-compatible API.
func completion(ctx context.Context, client openai.Client, model string, temperature float64, messages []Message, name string) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			out[i] = openai.UserMessage(msg.Content)
		}
	}
	return out
}
