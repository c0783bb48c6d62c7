// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration struct is parsed from the environment
// once per process; subsequent loads of the same type return the cached value.
//
// A .env file in the working directory is loaded automatically on first use.
// Parsing is delegated to the caarlos0/env library.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into cfg, which must be a non-nil pointer
// to a struct. The parsed value is cached by struct type, so repeated loads
// of the same type are cheap and consistent across the process.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: Load expects a non-nil pointer to a struct, got %T", cfg)
	}

	// Missing .env is not an error; the environment may be set externally.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	t := v.Elem().Type()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[t]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t, err)
	}

	cache[t] = v.Elem().Interface()
	return nil
}

// MustLoad is like Load but panics on failure. Intended for process startup
// where a missing required variable should abort immediately.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
