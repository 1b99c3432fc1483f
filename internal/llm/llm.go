// Package llm produces an optional natural-language summary of a coverage
// report through an OpenAI-compatible chat-completions API.
package llm

import (
	"fmt"
	"strings"

	"github.com/diffcov/diffcov/internal/config"
)

// Summarizer writes a short prose summary of a rendered coverage report.
type Summarizer interface {
	Summarize(reportText string) (string, error)
}

// New creates a Summarizer for the configured provider.
func New(cfg config.LLMConfig) (Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key not configured")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		switch strings.ToLower(cfg.Provider) {
		case "openai", "":
			endpoint = DefaultOpenAIEndpoint
		case "deepseek":
			endpoint = DefaultDeepSeekEndpoint
		default:
			return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
		}
	}

	return NewChatClient(cfg.APIKey, cfg.Model, endpoint), nil
}
