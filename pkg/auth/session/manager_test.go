package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	f.store[key] = fmt.Sprint(value)
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	value, ok := f.store[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.store[key]; ok {
			delete(f.store, key)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func TestSessionLifecycle(t *testing.T) {
	mgr, err := NewManager(newFakeRedis(), time.Hour)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}
	ctx := context.Background()

	active, err := mgr.IsActive(ctx, "jti-1")
	if err != nil {
		t.Fatalf("checking unknown session: %v", err)
	}
	if active {
		t.Fatal("unknown session reported active")
	}

	if err := mgr.Register(ctx, "jti-1", "user-1"); err != nil {
		t.Fatalf("registering: %v", err)
	}
	active, err = mgr.IsActive(ctx, "jti-1")
	if err != nil {
		t.Fatalf("checking session: %v", err)
	}
	if !active {
		t.Fatal("registered session reported inactive")
	}

	if err := mgr.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoking: %v", err)
	}
	active, err = mgr.IsActive(ctx, "jti-1")
	if err != nil {
		t.Fatalf("checking revoked session: %v", err)
	}
	if active {
		t.Fatal("revoked session reported active")
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, time.Hour); err == nil {
		t.Fatal("nil client must be rejected")
	}
	if _, err := NewManager(newFakeRedis(), 0); err == nil {
		t.Fatal("zero ttl must be rejected")
	}
}
