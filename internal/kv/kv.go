// Package kv provides the durable key-value storage that collections are
// persisted in. Each key holds one complete serialized value; there are no
// partial updates.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a local key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put overwrites the value stored under key.
	Put(key string, value []byte) error
	// Keys returns every stored key in ascending order.
	Keys() ([]string, error)
	Close() error
}

// Watcher is implemented by stores that can report writes made by other
// processes. The channel receives the changed key and is closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// ValidateKey checks that key can be used with every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

// MatchKey reports whether key matches a doublestar glob pattern.
// An empty pattern matches every key.
func MatchKey(key, pattern string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return false, fmt.Errorf("invalid key pattern %q", pattern)
	}
	return doublestar.Match(pattern, key)
}

// Match returns the keys of s that match a doublestar glob pattern, sorted.
// An empty pattern matches every key.
func Match(s Store, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q", pattern)
	}
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, key := range keys {
		ok, err := MatchKey(key, pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched, nil
}
