package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

func testImage(t *testing.T, v int) *imaging.Image {
	t.Helper()
	img, err := imaging.New([][]imaging.Pixel{
		{{R: v, G: v + 1, B: v + 2}, imaging.Grey(v)},
		{imaging.Grey(255), {R: 0, G: 128, B: 64}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// newRedisStore starts an in-process Redis server for the test.
func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "test:", ttl)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

// backends returns one fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	rs, _ := newRedisStore(t, 0)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  rs,
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			img := testImage(t, 10)
			if err := s.Put(ctx, "koala", img); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, err := s.Get(ctx, "koala")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !got.Equal(img) {
				t.Error("stored image differs")
			}

			replacement := testImage(t, 20)
			if err := s.Put(ctx, "koala", replacement); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, err = s.Get(ctx, "koala")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !got.Equal(replacement) {
				t.Error("Put did not replace the image")
			}
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("Get: got %v, want NOT_FOUND", err)
			}
			if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("Delete: got %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestStore_DeleteAndNames(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			names, err := s.Names(ctx)
			if err != nil {
				t.Fatalf("Names failed: %v", err)
			}
			if len(names) != 0 {
				t.Fatalf("new store has names %v", names)
			}

			for _, n := range []string{"c", "a", "b"} {
				if err := s.Put(ctx, n, testImage(t, 1)); err != nil {
					t.Fatalf("Put %s failed: %v", n, err)
				}
			}
			if err := s.Delete(ctx, "b"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}

			names, err = s.Names(ctx)
			if err != nil {
				t.Fatalf("Names failed: %v", err)
			}
			if diff := cmp.Diff([]string{"a", "c"}, names); diff != "" {
				t.Errorf("Names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_PutValidation(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, "", testImage(t, 1)); !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("empty name: got %v, want INVALID_ARGUMENT", err)
			}
			if err := s.Put(ctx, "x", nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("nil image: got %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestStore_KeepsMaxValue(t *testing.T) {
	ctx := context.Background()
	img, err := imaging.NewWithMax([][]imaging.Pixel{{imaging.Grey(3), imaging.Grey(15)}}, 15)
	if err != nil {
		t.Fatalf("NewWithMax failed: %v", err)
	}
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, "deep", img); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, err := s.Get(ctx, "deep")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !got.Equal(img) {
				t.Errorf("got max %d, want 15 and identical pixels", got.MaxValue())
			}
		})
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	img := testImage(t, 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("img-%d", i%5)
			if err := s.Put(ctx, name, img); err != nil {
				t.Errorf("Put failed: %v", err)
			}
			if _, err := s.Get(ctx, name); err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	names, err := s.Names(ctx)
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	want := []string{"img-0", "img-1", "img-2", "img-3", "img-4"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	if err := s.Put(ctx, "short", testImage(t, 1)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if ttl := mr.TTL("test:short"); ttl != time.Minute {
		t.Errorf("TTL: got %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := s.Get(ctx, "short"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("after expiry: got %v, want NOT_FOUND", err)
	}
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, 0)
	mr.HSet("test:broken", fieldData, "P6 garbage")
	mr.HSet("test:broken", fieldMax, "255")

	if _, err := s.Get(ctx, "broken"); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("got %v, want INTERNAL_ERROR", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open default failed: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("default backend: got %T, want *MemoryStore", s)
	}

	mr := miniredis.RunT(t)
	s, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("Open redis failed: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*RedisStore); !ok {
		t.Errorf("redis backend: got %T, want *RedisStore", s)
	}

	if _, err := Open(ctx, Options{Backend: "etcd"}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("unknown backend: got %v, want INVALID_ARGUMENT", err)
	}
}
