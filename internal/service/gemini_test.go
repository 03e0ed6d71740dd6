package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/backend/config"
)

func newGeminiService(url string) *GeminiService {
	return NewGeminiService(config.GeminiConfig{
		APIKey:          "test-key",
		APIURL:          url,
		Timeout:         2 * time.Second,
		Temperature:     0.8,
		MaxOutputTokens: 1000,
		TopP:            0.8,
		TopK:            40,
	}, zap.NewNop())
}

func geminiBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func TestGeminiService_Configured(t *testing.T) {
	assert.False(t, NewGeminiService(config.GeminiConfig{}, zap.NewNop()).Configured())
	assert.True(t, newGeminiService("http://example.com").Configured())
}

func TestGeminiService_GenerateText(t *testing.T) {
	t.Run("sends credentials and sampling config", func(t *testing.T) {
		var captured geminiRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("X-goog-api-key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(geminiBody("Title: Test Recipe")))
		}))
		defer server.Close()

		text, err := newGeminiService(server.URL).GenerateText(context.Background(), "make me pasta")
		require.NoError(t, err)
		assert.Equal(t, "Title: Test Recipe", text)

		require.Len(t, captured.Contents, 1)
		require.Len(t, captured.Contents[0].Parts, 1)
		assert.Equal(t, "make me pasta", captured.Contents[0].Parts[0].Text)
		assert.InDelta(t, 0.8, captured.GenerationConfig.Temperature, 1e-9)
		assert.Equal(t, 1000, captured.GenerationConfig.MaxOutputTokens)
		assert.InDelta(t, 0.8, captured.GenerationConfig.TopP, 1e-9)
		assert.Equal(t, 40, captured.GenerationConfig.TopK)
	})

	t.Run("non-success status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newGeminiService(server.URL).GenerateText(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty candidate list is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		_, err := newGeminiService(server.URL).GenerateText(context.Background(), "prompt")
		assert.Error(t, err)
	})

	t.Run("empty candidate text is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(geminiBody("")))
		}))
		defer server.Close()

		_, err := newGeminiService(server.URL).GenerateText(context.Background(), "prompt")
		assert.Error(t, err)
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		_, err := newGeminiService("http://127.0.0.1:1").GenerateText(context.Background(), "prompt")
		assert.Error(t, err)
	})
}
