package ai

import (
	"context"
	"testing"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Content: "stub"}, nil
}

func TestRegisterAndGetProvider(t *testing.T) {
	Register("stub", func(apiKey string) (Provider, error) {
		return &stubProvider{name: "stub"}, nil
	})

	p, err := GetProvider("stub", "any-key")
	if err != nil {
		t.Fatalf("GetProvider failed: %v", err)
	}
	if p.Name() != "stub" {
		t.Errorf("Name = %q, want stub", p.Name())
	}
}

func TestGetProvider_Unknown(t *testing.T) {
	if _, err := GetProvider("no-such-provider", "key"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestListProviders_IncludesBuiltins(t *testing.T) {
	names := ListProviders()
	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"gemini", "claude"} {
		if !found[want] {
			t.Errorf("ListProviders missing %q: %v", want, names)
		}
	}
}
