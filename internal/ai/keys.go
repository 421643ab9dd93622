package ai

import (
	"fmt"
	"os"
)

const (
	// EnvGeminiKey is the environment variable for the Gemini API key.
	EnvGeminiKey = "GEMINI_API_KEY"
	// EnvClaudeKey is the environment variable for the Claude API key.
	EnvClaudeKey = "ANTHROPIC_API_KEY"
)

// ResolveKey finds the API key for a provider: environment variables win,
// then the encrypted keystore.
func ResolveKey(provider string) (string, error) {
	envKey := envKeyForProvider(provider)
	if envKey != "" {
		if key := os.Getenv(envKey); key != "" {
			return key, nil
		}
	}

	ks, err := NewKeystore()
	if err != nil {
		return "", err
	}
	key, err := ks.Get(provider)
	if err != nil {
		return "", &ProviderError{
			Provider: provider,
			Message:  fmt.Sprintf("API key not found (set %s or run `habitflow coach config`)", envKey),
		}
	}
	return key, nil
}

// envKeyForProvider returns the environment variable name for the given provider.
func envKeyForProvider(provider string) string {
	switch provider {
	case "gemini":
		return EnvGeminiKey
	case "claude", "anthropic":
		return EnvClaudeKey
	default:
		return ""
	}
}
