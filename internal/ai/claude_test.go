package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClaude(serverURL string) *ClaudeProvider {
	return &ClaudeProvider{
		apiKey: "test-key",
		apiURL: serverURL,
		client: &http.Client{},
	}
}

func claudeCannedResponse(text string) string {
	quoted, _ := json.Marshal(text)
	return `{"id":"msg_1","type":"message","role":"assistant",` +
		`"content":[{"type":"text","text":` + string(quoted) + `}],` +
		`"model":"claude-sonnet-4-5-20250929",` +
		`"usage":{"input_tokens":10,"output_tokens":5}}`
}

func TestClaudeProvider_Name(t *testing.T) {
	p := newTestClaude("http://unused")
	if p.Name() != "claude" {
		t.Errorf("expected 'claude', got '%s'", p.Name())
	}
}

func TestClaudeProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(claudeCannedResponse("Hello from Claude!")))
	}))
	defer server.Close()

	p := newTestClaude(server.URL)
	resp, err := p.Complete(context.Background(), NewRequest("Hello"))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Content != "Hello from Claude!" {
		t.Errorf("expected 'Hello from Claude!', got '%s'", resp.Content)
	}
	if resp.Usage.PromptTokens != 10 || resp.Usage.CompletionTokens != 5 || resp.Usage.TotalTokens != 15 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestClaudeProvider_Complete_JSONModeAddsSystemNote(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(claudeCannedResponse("{}")))
	}))
	defer server.Close()

	p := newTestClaude(server.URL)
	req := NewRequest("Analyze this")
	req.System = "You are a habit coach"
	req.JSONResponse = true
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	system, _ := received["system"].(string)
	if !strings.Contains(system, "You are a habit coach") {
		t.Errorf("original system message lost: %q", system)
	}
	if !strings.Contains(system, "JSON") {
		t.Errorf("JSON instruction not appended: %q", system)
	}
}

func TestClaudeProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"authentication_error"}}`))
	}))
	defer server.Close()

	p := newTestClaude(server.URL)
	_, err := p.Complete(context.Background(), NewRequest("Hello"))
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error should carry the API message: %v", err)
	}
}

func TestClaudeFactory_RequiresKey(t *testing.T) {
	if _, err := GetProvider("claude", ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := GetProvider("claude", "key")
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	if p.Name() != "claude" {
		t.Errorf("Name = %q", p.Name())
	}
}
