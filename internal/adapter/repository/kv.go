package repository

import "context"

// KV is the key-value store the repositories persist through. Implementations
// return found=false for missing keys instead of an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
