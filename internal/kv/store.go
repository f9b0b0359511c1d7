// Package kv provides the persistent string key-value store that backs the
// record collections and the current session.
package kv

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyKey = errors.New("kv: key must not be empty")

// Store is a synchronous whole-value key-value store.
// Get reports ok=false when the key has never been set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
