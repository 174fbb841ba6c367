// Package llm talks to chat models and reviews rendered timetables with them.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
	ErrModelRequired       = errors.New("model is required")
	ErrEmptyResponse       = errors.New("model returned no choices")
	ErrInvalidJSON         = errors.New("model reply is not valid JSON")
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultTemperature keeps reviews of the same timetable close to each other.
const DefaultTemperature = 0.2

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// Settings selects and configures a provider.
type Settings struct {
	Provider    string
	Model       string
	BaseURL     string
	Temperature float64 // 0 uses DefaultTemperature
}

func (s Settings) temperature() float64 {
	if s.Temperature <= 0 {
		return DefaultTemperature
	}
	return s.Temperature
}

// decodeReply unmarshals the JSON document found in reply into result.
func decodeReply(reply string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(reply)), result); err != nil {
		return fmt.Errorf("%w: %v (reply: %.200q)", ErrInvalidJSON, err, reply)
	}
	return nil
}

// extractJSON pulls a JSON document out of a reply that may wrap it in a
// markdown code block or surrounding prose.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		idx := strings.Index(s, fence)
		if idx == -1 {
			continue
		}
		rest := strings.TrimLeft(s[idx+len(fence):], "\r\n")
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimRight(rest[:end], "\r\n")
		}
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		depth := 0
		for j := i; j < len(s); j++ {
			switch s[j] {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return s[i : j+1]
				}
			}
		}
	}

	return s
}
