package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffcov/diffcov/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		_, err := New(config.LLMConfig{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("known providers get default endpoints", func(t *testing.T) {
		for _, provider := range []string{"openai", "deepseek", ""} {
			s, err := New(config.LLMConfig{Provider: provider, APIKey: "k", Model: "m"})
			require.NoError(t, err, "provider %q", provider)
			assert.NotNil(t, s)
		}
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := New(config.LLMConfig{Provider: "mystery", APIKey: "k"})
		assert.Error(t, err)
	})

	t.Run("explicit endpoint wins over provider", func(t *testing.T) {
		s, err := New(config.LLMConfig{Provider: "mystery", APIKey: "k", Endpoint: "http://localhost:9999"})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestChatClient_Summarize(t *testing.T) {
	t.Run("sends prompt and extracts completion", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Coverage looks thin in the parser.  "}}]}`))
		}))
		defer server.Close()

		client := NewChatClient("sk-test", "gpt-4o-mini", server.URL)
		summary, err := client.Summarize("Total: 1/2 lines (50.0%)")

		require.NoError(t, err)
		assert.Equal(t, "Coverage looks thin in the parser.", summary)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "gpt-4o-mini", gotBody["model"])

		messages := gotBody["messages"].([]interface{})
		content := messages[0].(map[string]interface{})["content"].(string)
		assert.Contains(t, content, "Total: 1/2 lines")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewChatClient("sk-test", "m", server.URL)
		_, err := client.Summarize("report")
		assert.Error(t, err)
	})

	t.Run("response without content is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := NewChatClient("sk-test", "m", server.URL)
		_, err := client.Summarize("report")
		assert.Error(t, err)
	})
}
