package providers

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Request contains the assembled prompt sent to an LLM.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response contains the raw reply from an LLM.
type Response struct {
	Content    string
	TokensUsed int
}

// Client is the provider abstraction. Send performs the single outbound
// network call of a review run.
type Client interface {
	Send(ctx context.Context, req Request) (Response, error)
	Name() string
	Model() string
}

// Options carries cross-provider construction settings.
type Options struct {
	// Timeout bounds the provider HTTP call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is applied when Options.Timeout is zero.
const DefaultTimeout = 120 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}

// Factory constructs a Client for a given model. An empty model selects the
// provider's default.
type Factory func(model string, opts Options) (Client, error)

// Registry maps provider names (and aliases) to factories. It is built
// explicitly at process start and passed to the pipeline rather than living
// in package-level state.
type Registry struct {
	factories map[string]Factory
	canonical map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		canonical: make(map[string]string),
	}
}

// Register adds a provider factory under a canonical name and any aliases.
func (r *Registry) Register(name string, f Factory, aliases ...string) {
	r.factories[name] = f
	r.canonical[name] = name
	for _, a := range aliases {
		r.canonical[a] = name
	}
}

// New constructs a Client by provider name or alias.
func (r *Registry) New(name, model string, opts Options) (Client, error) {
	canonical, ok := r.canonical[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %v)", name, r.Names())
	}
	return r.factories[canonical](model, opts)
}

// Names returns the canonical provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a Registry with all built-in providers registered.
// Aliases cover the names used by earlier releases (chatgpt, claude, google).
func Default() *Registry {
	r := NewRegistry()
	r.Register("anthropic", func(model string, opts Options) (Client, error) {
		return NewAnthropic(model, opts)
	}, "claude")
	r.Register("openai", func(model string, opts Options) (Client, error) {
		return NewOpenAI(model, opts)
	}, "chatgpt")
	r.Register("gemini", func(model string, opts Options) (Client, error) {
		return NewGemini(model, opts)
	}, "google")
	r.Register("ollama", func(model string, opts Options) (Client, error) {
		return NewOllama(model, opts)
	}, "lmstudio")
	return r
}
