// Package secrets resolves the LLM API key from an ordered list of
// providers. Each provider is a closure over one storage mechanism; the
// first non-empty answer wins, so callers stay independent of where the key
// actually lives.
package secrets

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

// Keyring coordinates for the stored API key.
const (
	keyringService = "devcopilot"
	keyringUser    = "llm-api-key"
)

// EnvVar is the environment variable the engine CLI itself honors.
const EnvVar = "LLM_API_KEY"

// Provider returns a candidate API key; empty means not found.
// Providers must not fail loudly: a broken backend is just "no answer".
type Provider func() string

// Resolve evaluates providers in order and returns the first non-empty key.
func Resolve(providers ...Provider) string {
	for _, p := range providers {
		if key := strings.TrimSpace(p()); key != "" {
			return key
		}
	}
	return ""
}

// FromLiteral yields a fixed value, typically a --api-key flag.
func FromLiteral(value string) Provider {
	return func() string { return value }
}

// FromEnv reads the key from the first set environment variable.
func FromEnv(lookup func(string) (string, bool), names ...string) Provider {
	return func() string {
		for _, name := range names {
			if v, ok := lookup(name); ok && v != "" {
				return v
			}
		}
		return ""
	}
}

// FromDotenv reads the key from a .env file without mutating the process
// environment.
func FromDotenv(path, name string) Provider {
	return func() string {
		vars, err := godotenv.Read(path)
		if err != nil {
			return ""
		}
		return vars[name]
	}
}

// FromKeyring reads the key from the OS credential store.
func FromKeyring() Provider {
	return func() string {
		key, err := keyring.Get(keyringService, keyringUser)
		if err != nil {
			return ""
		}
		return key
	}
}

// StoreInKeyring persists the key in the OS credential store.
func StoreInKeyring(key string) error {
	return keyring.Set(keyringService, keyringUser, key)
}

// DeleteFromKeyring removes the stored key. Deleting a missing key is fine.
func DeleteFromKeyring() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
