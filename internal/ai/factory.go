package ai

import (
	"context"

	"github.com/habitflow/habitflow/internal/config"
)

// FromConfig returns the configured provider with its API key resolved.
// The config's model and system instructions are applied to every request
// that does not set its own.
func FromConfig(cfg *config.Config) (Provider, error) {
	name := cfg.AI.Provider
	if name == "" {
		name = "gemini"
	}

	apiKey, err := ResolveKey(name)
	if err != nil {
		return nil, err
	}

	p, err := GetProvider(name, apiKey)
	if err != nil {
		return nil, err
	}

	if cfg.AI.Model == "" && cfg.AI.SystemInstructions == "" {
		return p, nil
	}
	return &configuredProvider{
		Provider:     p,
		model:        cfg.AI.Model,
		instructions: cfg.AI.SystemInstructions,
	}, nil
}

// configuredProvider layers config defaults onto outgoing requests.
type configuredProvider struct {
	Provider
	model        string
	instructions string
}

func (c *configuredProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if c.instructions != "" {
		if req.System != "" {
			req.System += "\n\n" + c.instructions
		} else {
			req.System = c.instructions
		}
	}
	return c.Provider.Complete(ctx, req)
}
