package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderCopilot  = "copilot"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

var providerAliases = map[string]string{
	"":          ProviderCopilot,
	"lm-studio": ProviderLMStudio,
	"llmstudio": ProviderLMStudio,
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderCopilot, ProviderOllama, ProviderLMStudio}
}

// normalizeProvider maps name and its aliases to a provider constant.
func normalizeProvider(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := providerAliases[name]; ok {
		name = alias
	}
	for _, p := range Providers() {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// ValidProvider reports whether name selects a supported provider.
func ValidProvider(name string) bool {
	_, ok := normalizeProvider(name)
	return ok
}

// NewClient creates the client for s.Provider. The Copilot client
// exchanges its token here, over the network.
func NewClient(s Settings) (Client, error) {
	provider, ok := normalizeProvider(s.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedProvider, s.Provider, strings.Join(Providers(), ", "))
	}
	switch provider {
	case ProviderOllama:
		return NewOllamaClient(s)
	case ProviderLMStudio:
		return NewLMStudioClient(s)
	default:
		return NewCopilotClient(s)
	}
}
