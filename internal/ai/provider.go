package ai

import (
	"context"
	"fmt"
)

// Provider is the interface that all AI providers must implement.
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "claude")
	Name() string

	// Complete sends a prompt and returns the complete response.
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Request represents an AI completion request.
type Request struct {
	// Prompt is the user's input text.
	Prompt string

	// System is an optional system message to set context.
	System string

	// Model is an optional model override (if empty, uses provider default).
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSONResponse asks the provider to emit a single JSON document.
	JSONResponse bool
}

// Validate checks that the request is well-formed.
func (r *Request) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", r.Temperature)
	}
	return nil
}

// Response represents an AI completion response.
type Response struct {
	// Content is the generated text.
	Content string

	// Model is the actual model that was used.
	Model string

	// Usage contains token counts.
	Usage Usage
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewRequest creates a request with sensible defaults.
func NewRequest(prompt string) *Request {
	return &Request{
		Prompt:      prompt,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// ProviderError wraps provider-specific failures with context.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
