package storage

import "context"

// Repository is a string key/value store. Get returns common.ErrNotFound for
// absent keys; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
