package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// AuthError indicates missing or rejected credentials. It is distinct from
// ProviderError so users know whether to fix credentials or retry.
type AuthError struct {
	Provider string
	EnvVar   string
	Message  string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s environment variable is not set (set it in your environment or .env file)", e.Provider, e.EnvVar)
	}
	return fmt.Sprintf("%s: authentication rejected: %s", e.Provider, e.Message)
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// ProviderError indicates a transport or HTTP failure, carrying the
// provider's status and message.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: request failed: %s", e.Provider, e.Message)
}

// TimeoutError indicates the provider call exceeded the configured timeout.
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out after %s (increase --timeout and retry)", e.Provider, e.Timeout)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// wrapTransportErr classifies an http.Client error as timeout or generic
// provider failure.
func wrapTransportErr(provider string, timeout time.Duration, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: provider, Timeout: timeout}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{Provider: provider, Timeout: timeout}
	}
	return &ProviderError{Provider: provider, Message: err.Error()}
}

// rateLimitError marks a 429 reply; it is the only error class retried.
type rateLimitError struct {
	provider string
}

func (e *rateLimitError) Error() string { return e.provider + ": rate limited" }

// retryWithBackoff retries fn on rate-limit errors with exponential backoff.
// All other errors return immediately, preserving the single-shot contract.
func retryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var rl *rateLimitError
		if !errors.As(lastErr, &rl) {
			return lastErr
		}
		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	// Surface exhausted rate limiting as a provider error with the 429 status.
	var rl *rateLimitError
	if errors.As(lastErr, &rl) {
		return &ProviderError{Provider: rl.provider, StatusCode: 429, Message: "rate limited after retries"}
	}
	return lastErr
}
