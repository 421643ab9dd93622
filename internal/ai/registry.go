package ai

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderFactory builds a provider from an API key. Factories register
// themselves in init so the coach can look providers up by config name.
type ProviderFactory func(apiKey string) (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]ProviderFactory)
)

// Register adds a provider factory under a name ("gemini", "claude").
func Register(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// GetProvider builds the named provider with the given API key.
func GetProvider(name, apiKey string) (Provider, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return factory(apiKey)
}

// ListProviders returns all registered provider names, sorted.
func ListProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
