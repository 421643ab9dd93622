package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiCannedResponse(text string) string {
	quoted, _ := json.Marshal(text)
	return `{"candidates":[{"content":{"parts":[{"text":` + string(quoted) + `}]}}],` +
		`"usageMetadata":{"promptTokenCount":8,"candidatesTokenCount":12,"totalTokenCount":20}}`
}

func newTestGemini(serverURL string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:       "test-key",
		defaultModel: "gemini-2.5-flash",
		baseURL:      serverURL,
		client:       &http.Client{},
	}
}

func TestGeminiProvider_Name(t *testing.T) {
	p := newTestGemini("http://unused")
	if p.Name() != "gemini" {
		t.Errorf("expected 'gemini', got '%s'", p.Name())
	}
}

func TestGeminiProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiCannedResponse("Hello from Gemini!")))
	}))
	defer server.Close()

	p := newTestGemini(server.URL)
	resp, err := p.Complete(context.Background(), NewRequest("Hello"))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Content != "Hello from Gemini!" {
		t.Errorf("expected 'Hello from Gemini!', got '%s'", resp.Content)
	}
	if resp.Usage.PromptTokens != 8 || resp.Usage.TotalTokens != 20 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestGeminiProvider_Complete_SendsSystemAndJSONMode(t *testing.T) {
	var receivedBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&receivedBody) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiCannedResponse("ok")))
	}))
	defer server.Close()

	p := newTestGemini(server.URL)
	req := NewRequest("Hello")
	req.System = "You are a habit coach"
	req.JSONResponse = true
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if receivedBody.SystemInstruction == nil ||
		len(receivedBody.SystemInstruction.Parts) == 0 ||
		receivedBody.SystemInstruction.Parts[0].Text != "You are a habit coach" {
		t.Errorf("system instruction not forwarded: %+v", receivedBody.SystemInstruction)
	}
	if receivedBody.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("responseMimeType = %q, want application/json", receivedBody.GenerationConfig.ResponseMIMEType)
	}
}

func TestGeminiProvider_Complete_ModelOverrideInURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-pro") {
			t.Errorf("expected model override in URL path, got: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiCannedResponse("ok")))
	}))
	defer server.Close()

	p := newTestGemini(server.URL)
	req := NewRequest("Hello")
	req.Model = "gemini-2.5-pro"
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestGeminiProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := newTestGemini(server.URL)
	_, err := p.Complete(context.Background(), NewRequest("Hello"))
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestGeminiProvider_Complete_EmptyPromptRejected(t *testing.T) {
	p := newTestGemini("http://unused")
	if _, err := p.Complete(context.Background(), &Request{}); err == nil {
		t.Fatal("expected validation error for empty prompt")
	}
}

func TestGeminiFactory_RequiresKey(t *testing.T) {
	if _, err := GetProvider("gemini", ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := GetProvider("gemini", "key")
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	if p.Name() != "gemini" {
		t.Errorf("Name = %q", p.Name())
	}
}
