/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package supplychainlib

import (
	"sync"
	"testing"
)

type fakeAdapter struct {
	name string
}

func TestRegistry(t *testing.T) {
	t.Run("RegisterAndGet", func(t *testing.T) {
		reg := NewRegistry()

		err := reg.RegisterAdapter("inventory", &fakeAdapter{name: "inventory"})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		got, err := reg.GetAdapter("inventory")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		adapter, ok := got.(*fakeAdapter)
		if !ok {
			t.Fatalf("Unexpected adapter type %T", got)
		}
		if adapter.name != "inventory" {
			t.Fatalf("Expected inventory adapter, got %q", adapter.name)
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		reg := NewRegistry()

		if err := reg.RegisterAdapter("docs", &fakeAdapter{}); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := reg.RegisterAdapter("docs", &fakeAdapter{}); err == nil {
			t.Fatal("Expected duplicate registration error")
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		reg := NewRegistry()

		if _, err := reg.GetAdapter("missing"); err == nil {
			t.Fatal("Expected error for unknown key")
		}
	})
}

func TestTypedRegistry(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		reg := NewTypedRegistry[*fakeAdapter]()

		err := reg.Register("suppliers", &fakeAdapter{name: "suppliers"})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		got, err := reg.Get("suppliers")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if got.name != "suppliers" {
			t.Fatalf("Expected suppliers adapter, got %q", got.name)
		}

		keys := reg.List()
		if len(keys) != 1 || keys[0] != "suppliers" {
			t.Fatalf("Expected [suppliers], got %v", keys)
		}

		if err := reg.Remove("suppliers"); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
		if _, err := reg.Get("suppliers"); err == nil {
			t.Fatal("Expected error after removal")
		}
	})

	t.Run("RemoveUnknown", func(t *testing.T) {
		reg := NewTypedRegistry[*fakeAdapter]()

		if err := reg.Remove("missing"); err == nil {
			t.Fatal("Expected error removing unknown key")
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		reg := NewTypedRegistry[int]()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := string(rune('a' + n))
				if err := reg.Register(key, n); err != nil {
					t.Errorf("Failed to register %q: %v", key, err)
				}
			}(i)
		}
		wg.Wait()

		if got := len(reg.List()); got != 10 {
			t.Fatalf("Expected 10 registered adapters, got %d", got)
		}
	})
}
