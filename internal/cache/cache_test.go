package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"keiko-chat/internal/cache"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type testEntry struct {
	Content string `json:"content"`
}

func newTestCache(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})
	return cache.New(rdb, time.Hour), srv
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if !c.Set(ctx, "chat:response:abc", testEntry{Content: "Hallo"}, 0) {
		t.Fatal("Set() = false, want true")
	}

	var got testEntry
	if !c.Get(ctx, "chat:response:abc", &got) {
		t.Fatal("Get() = false, want hit")
	}
	if got.Content != "Hallo" {
		t.Errorf("content = %q, want Hallo", got.Content)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got testEntry
	if c.Get(context.Background(), "chat:response:missing", &got) {
		t.Error("Get() = true for absent key")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	if !c.Set(ctx, "chat:response:abc", testEntry{Content: "Hallo"}, 30*time.Second) {
		t.Fatal("Set() = false, want true")
	}
	if ttl := srv.TTL("chat:response:abc"); ttl != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", ttl)
	}

	srv.FastForward(31 * time.Second)

	var got testEntry
	if c.Get(ctx, "chat:response:abc", &got) {
		t.Error("Get() = true after expiry")
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	c, srv := newTestCache(t)

	if !c.Set(context.Background(), "chat:response:abc", testEntry{}, 0) {
		t.Fatal("Set() = false, want true")
	}
	if ttl := srv.TTL("chat:response:abc"); ttl != time.Hour {
		t.Errorf("TTL = %v, want default 1h", ttl)
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "chat:response:abc", testEntry{}, 0)
	if !c.Delete(ctx, "chat:response:abc") {
		t.Error("Delete() = false for present key")
	}
	if c.Delete(ctx, "chat:response:abc") {
		t.Error("Delete() = true for absent key")
	}
	if c.Exists(ctx, "chat:response:abc") {
		t.Error("Exists() = true after delete")
	}
}

func TestCache_UndecodableEntryIsMiss(t *testing.T) {
	c, srv := newTestCache(t)

	srv.Set("chat:response:abc", "not json{")

	var got testEntry
	if c.Get(context.Background(), "chat:response:abc", &got) {
		t.Error("Get() = true for undecodable entry")
	}
}

func TestCache_FailsOpenWhenRedisDown(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	srv.Close()

	var got testEntry
	if c.Get(ctx, "chat:response:abc", &got) {
		t.Error("Get() = true with Redis down")
	}
	if c.Set(ctx, "chat:response:abc", testEntry{}, 0) {
		t.Error("Set() = true with Redis down")
	}
	if err := c.Ping(ctx); err == nil {
		t.Error("Ping() = nil with Redis down")
	}
}

func TestCache_Ping(t *testing.T) {
	c, _ := newTestCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
