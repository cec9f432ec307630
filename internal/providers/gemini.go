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
	defaultGeminiURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiDefaultModel = "gemini-2.5-flash"
)

// Gemini implements Client for Google's Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewGemini creates a Gemini client. The API key comes from GEMINI_API_KEY
// (or GOOGLE_API_KEY); an empty model selects the default.
func NewGemini(model string, opts Options) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" {
		return nil, &AuthError{Provider: "gemini", EnvVar: "GEMINI_API_KEY"}
	}
	if model == "" {
		model = geminiDefaultModel
	}
	baseURL := os.Getenv("AIDIFF_GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeminiURL
	}
	timeout := opts.timeout()
	return &Gemini{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (g *Gemini) Name() string  { return "gemini" }
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Send(ctx context.Context, req Request) (Response, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	body := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: req.Prompt}},
			},
		},
		GenerationConfig: &geminiGenConfig{
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if body.GenerationConfig.MaxOutputTokens == 0 {
		body.GenerationConfig.MaxOutputTokens = 4096
	}
	if req.Temperature > 0 {
		body.GenerationConfig.Temperature = &req.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	var resp Response
	err = retryWithBackoff(ctx, 3, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := g.client.Do(httpReq)
		if err != nil {
			return wrapTransportErr("gemini", g.timeout, err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return &ProviderError{Provider: "gemini", Message: "reading response: " + err.Error()}
		}

		switch {
		case httpResp.StatusCode == 429:
			return &rateLimitError{provider: "gemini"}
		case httpResp.StatusCode == 401 || httpResp.StatusCode == 403:
			return &AuthError{Provider: "gemini", EnvVar: "GEMINI_API_KEY", Message: string(respBody)}
		case httpResp.StatusCode != 200:
			return &ProviderError{Provider: "gemini", StatusCode: httpResp.StatusCode, Message: string(respBody)}
		}

		var result geminiResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return &ProviderError{Provider: "gemini", Message: "parsing response: " + err.Error()}
		}

		if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
			return &ProviderError{Provider: "gemini", Message: "no content in response"}
		}

		var content string
		for _, part := range result.Candidates[0].Content.Parts {
			content += part.Text
		}

		resp = Response{
			Content:    content,
			TokensUsed: result.UsageMetadata.TotalTokenCount,
		}
		return nil
	})

	return resp, err
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsage struct {
	TotalTokenCount int `json:"totalTokenCount"`
}
