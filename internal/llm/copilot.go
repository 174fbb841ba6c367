package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	copilotTokenURL = "https://api.github.com/copilot_internal/v2/token"
	copilotBaseURL  = "https://api.githubcopilot.com"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gpt-4o"
)

// ErrTokenExchange is returned when GitHub refuses a Copilot token.
var ErrTokenExchange = errors.New("copilot token exchange failed")

// CopilotClient talks to GitHub Copilot through its OpenAI-compatible API.
type CopilotClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// tokenResponse is the body of GitHub's token exchange endpoint.
type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewCopilotClient finds the GitHub token and exchanges it for a Copilot
// bearer token.
func NewCopilotClient(s Settings) (*CopilotClient, error) {
	model := s.Model
	if model == "" {
		model = DefaultModel
	}

	githubToken, err := githubToken()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	bearer, err := exchangeToken(httpClient, copilotTokenURL, githubToken)
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(
		option.WithBaseURL(copilotBaseURL),
		option.WithAPIKey(bearer),
		option.WithHeader("Editor-Version", "Horario/1.0"),
		option.WithHeader("Editor-Plugin-Version", "Horario/1.0"),
		option.WithHeader("Copilot-Integration-Id", "vscode-chat"),
	)

	return &CopilotClient{
		client:      client,
		model:       model,
		temperature: s.temperature(),
	}, nil
}

// exchangeToken trades a GitHub OAuth token for a Copilot bearer token at
// url.
func exchangeToken(httpClient *http.Client, url, githubToken string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+githubToken)
	req.Header.Set("User-Agent", "Horario/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrTokenExchange, resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding response: %w", ErrTokenExchange, err)
	}
	if tr.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrTokenExchange)
	}
	return tr.Token, nil
}

// Chat sends messages to the model and returns its reply.
func (c *CopilotClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return completion(ctx, c.client, c.model, c.temperature, messages, "copilot")
}

// ChatJSON decodes the JSON document in the model's reply into result.
func (c *CopilotClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	reply, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeReply(reply, result)
}
