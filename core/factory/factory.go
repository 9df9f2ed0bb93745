package factory

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ModuleConfig is the configuration-file shape of a pluggable module: the
// registry key plus the raw options the factory decodes itself.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory builds one implementation of T from its raw options.
type Factory[T any] func(map[string]any) (T, error)

// Registry maps type names to factories. Registration happens in package
// init functions, creation at config load time, so lookups take the read
// lock only.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry returns an empty registry for T.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds a factory under the given type name. Registering the same
// name twice is an error; the first registration wins.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("factory already registered for %s", name)
	}
	r.factories[name] = f
	return nil
}

// Create builds the module named by cfg.Type from its raw options.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Type]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown module type %s", cfg.Type)
	}
	return f(cfg.Conf)
}

// Decode maps raw options onto a typed config struct, matching keys against
// the same json tags the config file loader uses.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
