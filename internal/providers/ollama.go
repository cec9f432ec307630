package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	ollamaDefaultModel = "llama3.3"
)

// Ollama implements Client for Ollama and LM Studio via their
// OpenAI-compatible chat API. It reuses the OpenAI wire types.
type Ollama struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewOllama creates an Ollama client. No API key is required by default;
// OLLAMA_HOST overrides the local endpoint and AIDIFF_OLLAMA_API_KEY
// supplies a key for servers that want one.
func NewOllama(model string, opts Options) (*Ollama, error) {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	if model == "" {
		model = ollamaDefaultModel
	}

	// Local models are slow; give them more room than the cloud default.
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 300 * time.Second
	}

	return &Ollama{
		apiKey:  os.Getenv("AIDIFF_OLLAMA_API_KEY"),
		model:   model,
		baseURL: baseURL + "/v1/chat/completions",
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (o *Ollama) Name() string  { return "ollama" }
func (o *Ollama) Model() string { return o.model }

func (o *Ollama) Send(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	body := openaiRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens: maxTokens,
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	var resp Response
	err = retryWithBackoff(ctx, 3, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if o.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
		}

		httpResp, err := o.client.Do(httpReq)
		if err != nil {
			return wrapTransportErr("ollama", o.timeout, err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return &ProviderError{Provider: "ollama", Message: "reading response: " + err.Error()}
		}

		switch {
		case httpResp.StatusCode == 429:
			return &rateLimitError{provider: "ollama"}
		case httpResp.StatusCode == 401 || httpResp.StatusCode == 403:
			return &AuthError{Provider: "ollama", EnvVar: "AIDIFF_OLLAMA_API_KEY", Message: string(respBody)}
		case httpResp.StatusCode != 200:
			return &ProviderError{Provider: "ollama", StatusCode: httpResp.StatusCode, Message: string(respBody)}
		}

		var result openaiResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return &ProviderError{Provider: "ollama", Message: "parsing response: " + err.Error()}
		}

		if len(result.Choices) == 0 {
			return &ProviderError{Provider: "ollama", Message: "no choices in response"}
		}

		resp = Response{
			Content:    result.Choices[0].Message.Content,
			TokensUsed: result.Usage.TotalTokens,
		}
		return nil
	})

	return resp, err
}
