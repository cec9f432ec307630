package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-4o"
)

// OpenAI implements Client for OpenAI's chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewOpenAI creates an OpenAI client. The API key comes from
// OPENAI_API_KEY; an empty model selects the default.
func NewOpenAI(model string, opts Options) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &AuthError{Provider: "openai", EnvVar: "OPENAI_API_KEY"}
	}
	if model == "" {
		model = openaiDefaultModel
	}
	baseURL := os.Getenv("AIDIFF_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	timeout := opts.timeout()
	return &OpenAI{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (o *OpenAI) Name() string  { return "openai" }
func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Send(ctx context.Context, req Request) (Response, error) {
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
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

		httpResp, err := o.client.Do(httpReq)
		if err != nil {
			return wrapTransportErr("openai", o.timeout, err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return &ProviderError{Provider: "openai", Message: "reading response: " + err.Error()}
		}

		switch {
		case httpResp.StatusCode == 429:
			return &rateLimitError{provider: "openai"}
		case httpResp.StatusCode == 401 || httpResp.StatusCode == 403:
			return &AuthError{Provider: "openai", EnvVar: "OPENAI_API_KEY", Message: string(respBody)}
		case httpResp.StatusCode != 200:
			return &ProviderError{Provider: "openai", StatusCode: httpResp.StatusCode, Message: string(respBody)}
		}

		var result openaiResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return &ProviderError{Provider: "openai", Message: "parsing response: " + err.Error()}
		}

		if len(result.Choices) == 0 {
			return &ProviderError{Provider: "openai", Message: "no choices in response"}
		}
		if result.Choices[0].Message.Content == "" {
			return &ProviderError{Provider: "openai", Message: "empty text content in response"}
		}

		resp = Response{
			Content:    result.Choices[0].Message.Content,
			TokensUsed: result.Usage.TotalTokens,
		}
		return nil
	})

	return resp, err
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature *float64        `json:"temperature,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
