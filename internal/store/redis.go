package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// DefaultKeyPrefix namespaces image keys when Options.KeyPrefix is empty.
const DefaultKeyPrefix = "grime:image:"

// Hash fields of a stored image.
const (
	fieldData = "ppm"
	fieldMax  = "max"
)

// RedisStore keeps images in Redis hashes, one per name.
//
// Each hash holds the plain-text P3 rendition of the image and its channel
// bound; the bound is stored separately because P3 headers always declare
// 255. Keys expire after TTL when it is positive.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to opts.RedisAddr and verifies the connection.
func NewRedisStore(ctx context.Context, opts Options) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.Password,
		DB:       opts.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.RedisAddr, err)
	}

	return NewRedisStoreFromClient(client, opts.KeyPrefix, opts.TTL), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, name string) (*imaging.Image, error) {
	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", name, err)
	}
	if len(fields) == 0 {
		return nil, notFound(name)
	}

	img, err := codec.DecodePPM(strings.NewReader(fields[fieldData]))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stored image %s is corrupt", name)
	}
	maxValue, err := strconv.Atoi(fields[fieldMax])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stored image %s has a bad bound", name)
	}
	if maxValue == img.MaxValue() {
		return img, nil
	}
	return imaging.FromPixels(img.Pixels(), img.Width(), img.Height(), maxValue)
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, name string, img *imaging.Image) error {
	if err := checkPut(name, img); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := codec.EncodePPM(&buf, img); err != nil {
		return err
	}

	key := s.key(name)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldData, buf.String(), fieldMax, img.MaxValue())
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store image %s: %w", name, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}
	if n == 0 {
		return notFound(name)
	}
	return nil
}

// Names implements Store.
func (s *RedisStore) Names(ctx context.Context) ([]string, error) {
	names := []string{}
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
