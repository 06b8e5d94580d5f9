// Package store keeps named images for a session.
//
// Two backends implement Store: MemoryStore, a mutex-guarded map for a
// single process, and RedisStore, which shares images between processes
// through Redis. Both return NOT_FOUND for missing names.
package store

import (
	"context"
	"time"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// Store maps names to images. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the image stored under name.
	Get(ctx context.Context, name string) (*imaging.Image, error)
	// Put stores img under name, replacing any previous image.
	Put(ctx context.Context, name string, img *imaging.Image) error
	// Delete removes name.
	Delete(ctx context.Context, name string) error
	// Names lists stored names in ascending order.
	Names(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	RedisAddr string
	RedisDB   int
	Password  string
	KeyPrefix string
	TTL       time.Duration
}

// Open returns the backend named by opts.Backend. An empty backend means memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts)
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown store backend %q", opts.Backend)
}

func checkPut(name string, img *imaging.Image) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "image name is empty")
	}
	if img == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "image %q is nil", name)
	}
	return nil
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "image: %s does not exist", name)
}
