package state

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the string commands RedisStore uses. Any other
// command panics through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	now     time.Time
	values  map[string]string
	expires map[string]time.Time
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		now:     time.Unix(1_700_000_000, 0),
		values:  map[string]string{},
		expires: map[string]time.Time{},
		ttls:    map[string]time.Duration{},
	}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	b, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("unexpected value type"))
	}
	f.values[key] = string(b)
	f.ttls[key] = ttl
	delete(f.expires, key)
	if ttl > 0 {
		f.expires[key] = f.now.Add(ttl)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	if exp, ok := f.expires[key]; ok && !f.now.Before(exp) {
		delete(f.values, key)
		delete(f.expires, key)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
		delete(f.values, k)
		delete(f.expires, k)
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := NewRedisStore(fake, "bot:")

	if _, ok, err := s.Load(ctx, 7); err != nil || ok {
		t.Fatalf("load empty: ok=%v err=%v", ok, err)
	}
	_ = s.Save(ctx, 7, []byte("a"), time.Hour)
	if err := s.Save(ctx, 7, []byte("b"), time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, ok, err := s.Load(ctx, 7)
	if err != nil || !ok || string(data) != "b" {
		t.Fatalf("load = %q ok=%v err=%v, want latest payload", data, ok, err)
	}
	if len(fake.values) != 1 || fake.ttls["bot:session:7"] != time.Minute {
		t.Fatalf("keys = %v ttls = %v", fake.values, fake.ttls)
	}
	if err := s.Clear(ctx, 7); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(ctx, 7); ok {
		t.Fatalf("session survived clear")
	}
}

func TestRedisStoreExpiryAndErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := NewRedisStore(fake, "")

	_ = s.Save(ctx, 1, []byte("x"), time.Minute)
	fake.now = fake.now.Add(2 * time.Minute)
	if _, ok, err := s.Load(ctx, 1); err != nil || ok {
		t.Fatalf("expired load: ok=%v err=%v", ok, err)
	}

	fake.failGet = errors.New("connection refused")
	if _, _, err := s.Load(ctx, 1); err == nil {
		t.Fatalf("expected load error")
	}
}

// TestRedisStoreLive runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisStoreLive(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	s := NewRedisStore(client, "contentbot-test:")
	_ = s.Save(ctx, 99, []byte("a"), time.Minute)
	_ = s.Save(ctx, 99, []byte("b"), time.Minute)
	data, ok, err := s.Load(ctx, 99)
	if err != nil || !ok || string(data) != "b" {
		t.Fatalf("load = %q ok=%v err=%v", data, ok, err)
	}
	if ttl := client.TTL(ctx, "contentbot-test:session:99").Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	_ = s.Clear(ctx, 99)
}
