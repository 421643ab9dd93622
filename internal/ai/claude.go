package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	claudeAPIURL       = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion   = "2023-06-01"
	claudeDefaultModel = "claude-sonnet-4-5-20250929"
	defaultMaxTokens   = 4096
	requestTimeout     = 120 * time.Second
)

// ClaudeProvider implements the Provider interface for Anthropic's Claude API.
type ClaudeProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func init() {
	Register("claude", func(apiKey string) (Provider, error) {
		if apiKey == "" {
			return nil, fmt.Errorf("API key required for Claude provider")
		}
		return &ClaudeProvider{
			apiKey: apiKey,
			apiURL: claudeAPIURL,
			client: &http.Client{Timeout: requestTimeout},
		}, nil
	})
}

func (c *ClaudeProvider) Name() string {
	return "claude"
}

func (c *ClaudeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	apiReq := c.buildRequest(req)
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, &ProviderError{Provider: "claude", Message: "encoding request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: "claude", Message: "creating request", Err: err}
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: "claude", Message: "sending request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var apiResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, &ProviderError{Provider: "claude", Message: "decoding response", Err: err}
	}

	return c.parseResponse(&apiResp), nil
}

func (c *ClaudeProvider) buildRequest(req *Request) map[string]interface{} {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	model := req.Model
	if model == "" {
		model = claudeDefaultModel
	}

	messages := []map[string]string{
		{"role": "user", "content": req.Prompt},
	}

	apiReq := map[string]interface{}{
		"model":      model,
		"max_tokens": maxTokens,
		"messages":   messages,
	}

	system := req.System
	// Claude has no structured-output switch; ask for bare JSON in the
	// system message instead.
	if req.JSONResponse {
		if system != "" {
			system += "\n\n"
		}
		system += "Respond with a single valid JSON document and nothing else. No markdown fences."
	}
	if system != "" {
		apiReq["system"] = system
	}

	if req.Temperature > 0 {
		apiReq["temperature"] = req.Temperature
	}

	return apiReq
}

func (c *ClaudeProvider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)
}

func (c *ClaudeProvider) parseResponse(apiResp *claudeResponse) *Response {
	var content string
	if len(apiResp.Content) > 0 {
		content = apiResp.Content[0].Text
	}

	return &Response{
		Content: content,
		Model:   apiResp.Model,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
	}
}

func (c *ClaudeProvider) handleErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{
			Provider: "claude",
			Message:  fmt.Sprintf("reading error response (status %d)", resp.StatusCode),
			Err:      err,
		}
	}

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &ProviderError{
			Provider: "claude",
			Message:  fmt.Sprintf("API error (status %d)", resp.StatusCode),
		}
	}
	return &ProviderError{
		Provider: "claude",
		Message:  fmt.Sprintf("%s (status %d)", errResp.Error.Message, resp.StatusCode),
	}
}

// claudeResponse is the API response structure from Claude.
type claudeResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model        string `json:"model"`
	StopReason   string `json:"stop_reason"`
	StopSequence string `json:"stop_sequence"`
	Usage        struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
