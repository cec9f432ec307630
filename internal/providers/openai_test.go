package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAI("", Options{})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestOpenAISend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openaiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "review this", req.Messages[0].Content)

		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: "No issues found."}},
			},
			Usage: openaiUsage{TotalTokens: 42},
		})
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("AIDIFF_OPENAI_BASE_URL", srv.URL)

	client, err := NewOpenAI("", Options{})
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Name())

	resp, err := client.Send(context.Background(), Request{Prompt: "review this"})
	require.NoError(t, err)
	assert.Equal(t, "No issues found.", resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)
}

func TestOpenAISendEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{})
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("AIDIFF_OPENAI_BASE_URL", srv.URL)

	client, err := NewOpenAI("", Options{})
	require.NoError(t, err)

	_, err = client.Send(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "no choices")
}

func TestOpenAISendEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openaiResponse{
			Choices: []openaiChoice{{Message: openaiMessage{Role: "assistant"}}},
		})
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("AIDIFF_OPENAI_BASE_URL", srv.URL)

	client, err := NewOpenAI("", Options{})
	require.NoError(t, err)

	_, err = client.Send(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty text content")
}
