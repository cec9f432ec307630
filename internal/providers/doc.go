// Package providers implements the Client interface for each supported LLM
// backend.
//
// Supported providers: Anthropic (Claude), OpenAI (ChatGPT), Google
// (Gemini), and Ollama / LM Studio for local models. Each variant resolves
// its own API key from the environment and reports a missing key as an
// [AuthError]; transport and HTTP failures surface as [ProviderError] and
// timeouts as [TimeoutError], so callers can tell users whether to fix
// credentials or simply retry.
//
// Clients are created through an explicit [Registry] built at process start
// (see [Default]) rather than package-level state. Rate-limited requests
// (HTTP 429) are retried with exponential backoff; everything else is
// single-shot. Base URLs can be overridden via AIDIFF_*_BASE_URL variables,
// which also lets tests point clients at local httptest servers.
package providers
