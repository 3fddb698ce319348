/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package supplychainlib

import (
	"fmt"
	"sync"
)

// Registry is a higher-level interface that manages a collection of adapter
// instances. Its methods are not generic; they use the empty interface (any)
// so adapters of different kinds can share one registry.
type Registry interface {
	// RegisterAdapter registers an adapter under a given key (for example,
	// "inventory" or "documents").
	RegisterAdapter(key string, adapter any) error
	// GetAdapter retrieves the registered adapter for a given key.
	// The caller must type-assert the returned value to the appropriate
	// adapter type.
	GetAdapter(key string) (any, error)
}

// adapterRegistry is a thread-safe implementation of the Registry interface.
type adapterRegistry struct {
	mu       sync.RWMutex
	adapters map[string]any
}

// NewRegistry creates and returns a new Registry implementation.
func NewRegistry() Registry {
	return &adapterRegistry{
		adapters: make(map[string]any),
	}
}

// RegisterAdapter stores the provided adapter under the given key.
func (r *adapterRegistry) RegisterAdapter(key string, adapter any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("adapter with key %q already registered", key)
	}
	r.adapters[key] = adapter
	return nil
}

// GetAdapter retrieves the adapter associated with the given key.
func (r *adapterRegistry) GetAdapter(key string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[key]
	if !exists {
		return nil, fmt.Errorf("adapter with key %q not found", key)
	}
	return adapter, nil
}

// TypedRegistry provides type-safe registration for adapters of one kind,
// avoiding the type assertion Registry requires.
type TypedRegistry[T any] struct {
	mu       sync.RWMutex
	adapters map[string]T
}

// NewTypedRegistry creates a new TypedRegistry for adapter type T.
func NewTypedRegistry[T any]() *TypedRegistry[T] {
	return &TypedRegistry[T]{
		adapters: make(map[string]T),
	}
}

// Register adds an adapter with the given key.
func (tr *TypedRegistry[T]) Register(key string, adapter T) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.adapters[key]; exists {
		return fmt.Errorf("adapter with key %q already registered", key)
	}

	tr.adapters[key] = adapter
	return nil
}

// Get retrieves an adapter by key.
func (tr *TypedRegistry[T]) Get(key string) (T, error) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	adapter, exists := tr.adapters[key]
	if !exists {
		var zero T
		return zero, fmt.Errorf("adapter with key %q not found", key)
	}

	return adapter, nil
}

// Remove deletes an adapter by key.
func (tr *TypedRegistry[T]) Remove(key string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, exists := tr.adapters[key]; !exists {
		return fmt.Errorf("adapter with key %q not found", key)
	}

	delete(tr.adapters, key)
	return nil
}

// List returns all registered adapter keys.
func (tr *TypedRegistry[T]) List() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	keys := make([]string, 0, len(tr.adapters))
	for k := range tr.adapters {
		keys = append(keys, k)
	}
	return keys
}
