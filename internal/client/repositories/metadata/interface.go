// Package metadata persists the client's small key/value state (session
// username and token, theme) in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a string key/value table. Get reports ok=false for a key
// that was never set or has been deleted.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
