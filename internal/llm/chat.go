package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultOpenAIEndpoint   = "https://api.openai.com/v1/chat/completions"
	DefaultDeepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"
)

const summaryPrompt = `You are reviewing a test coverage report for a pull request.
Write a short summary (3-5 sentences) of the coverage state: call out the
weakest files, whether the changed code is adequately tested, and what to
test next. Do not restate every number.

Report:
`

// ChatClient talks to an OpenAI-compatible chat-completions endpoint.
type ChatClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewChatClient creates a client for the given endpoint.
func NewChatClient(apiKey, model, endpoint string) *ChatClient {
	return &ChatClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Summarize sends the rendered report to the model and returns its summary.
func (c *ChatClient) Summarize(reportText string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": summaryPrompt + reportText},
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api request failed with status %d", resp.StatusCode)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("response contains no completion content")
	}

	return strings.TrimSpace(content.String()), nil
}
