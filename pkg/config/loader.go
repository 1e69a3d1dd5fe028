package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.RWMutex
	cache = make(map[string]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into v based on its `env` field tags.
// The first call for a given type parses and caches the result; subsequent
// calls return the cached copy, so every caller sees identical values for
// the process lifetime.
//
// A .env file is loaded once before the first parse; a missing file is not
// an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := typeName[T]()

	mu.RLock()
	cached, ok := cache[key]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	defer mu.Unlock()
	// Another goroutine may have parsed the same type concurrently; keep
	// the first stored copy so all callers agree.
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}
	cache[key] = *v
	return nil
}

// MustLoad is Load for configurations the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
