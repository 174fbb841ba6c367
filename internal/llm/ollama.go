package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaClient talks to a local Ollama server through langchaingo.
type OllamaClient struct {
	client      *ollama.LLM
	model       string
	baseURL     string
	temperature float64
}

// NewOllamaClient creates a client for s.Model. It does not contact the
// server.
func NewOllamaClient(s Settings) (*OllamaClient, error) {
	model := strings.TrimSpace(s.Model)
	if model == "" {
		return nil, fmt.Errorf("ollama: %w", ErrModelRequired)
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	client, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaClient{
		client:      client,
		model:       model,
		baseURL:     baseURL,
		temperature: s.temperature(),
	}, nil
}

func (c *OllamaClient) generate(ctx context.Context, messages []Message, opts ...llms.CallOption) (string, error) {
	opts = append(opts, llms.WithModel(c.model), llms.WithTemperature(c.temperature))
	resp, err := c.client.GenerateContent(ctx, toLangChainMessages(messages), opts...)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Content, nil
}

// Chat sends messages to the model and returns its reply.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.generate(ctx, messages)
}

// ChatJSON asks for a JSON reply and decodes it into result.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	reply, err := c.generate(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return err
	}
	return decodeReply(reply, result)
}

func toLangChainMessages(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch strings.ToLower(msg.Role) {
		case RoleSystem:
			role = llms.ChatMessageTypeSystem
		case RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, msg.Content))
	}
	return out
}
