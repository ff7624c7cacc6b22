// Package kv provides the persistent key-value storage behind the session
// store: an SQLite table (default) and a single JSON file.
//
// Contract shared by all implementations:
//   - Get returns (nil, nil) when the key is absent.
//   - Set overwrites an existing value.
//   - Delete of an absent key is not an error.
package kv

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
