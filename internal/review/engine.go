package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aidiff/aidiff/internal/cache"
	"github.com/aidiff/aidiff/internal/providers"
	"github.com/aidiff/aidiff/internal/redact"
)

// Engine runs the review pipeline: redact, assemble, dispatch, parse,
// filter. The single provider call is the only side effect; everything
// else is a pure function of the inputs.
type Engine struct {
	Provider      providers.Client
	Cache         *cache.Cache
	RedactSecrets bool
	RedactPaths   []string
	MaxTokens     int
}

// Result holds the outcome of one review run.
type Result struct {
	RunID      string
	Issues     []Issue
	Warnings   []ParseWarning
	Raw        string
	TokensUsed int
	CacheHit   bool
	LLMMs      int64
}

// Run executes a review of diff using the combined mode instructions.
// Parsed issues are filtered for placeholder false positives and then
// narrowed to the requested modes.
func (e *Engine) Run(ctx context.Context, instructions, diff string, modes []string) (*Result, error) {
	if e.RedactSecrets {
		diff = redact.Diff(diff, e.RedactPaths)
	}
	prompt := BuildPrompt(instructions, diff)

	result := &Result{RunID: uuid.NewString()}

	key := cache.Key(e.Provider.Name(), e.Provider.Model(), prompt)
	if e.Cache != nil {
		if raw, ok := e.Cache.Get(key); ok {
			result.Raw = raw
			result.CacheHit = true
		}
	}

	if !result.CacheHit {
		start := time.Now()
		resp, err := e.Provider.Send(ctx, providers.Request{
			Prompt:    prompt,
			MaxTokens: e.MaxTokens,
		})
		result.LLMMs = time.Since(start).Milliseconds()
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", e.Provider.Name(), err)
		}
		result.Raw = resp.Content
		result.TokensUsed = resp.TokensUsed
		if e.Cache != nil {
			_ = e.Cache.Put(key, result.Raw) // cache failures never fail the run
		}
	}

	issues, warnings := ParseIssues(result.Raw)
	issues = FilterFalsePositives(issues)
	issues = FilterByModes(issues, modes)

	result.Issues = issues
	result.Warnings = warnings
	return result, nil
}
