package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	userID, ok := s.GetUserID(ctx, id)
	if !ok || userID != "user-1" {
		t.Fatalf("expected user-1, got %q ok=%v", userID, ok)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.GetUserID(ctx, id); ok {
		t.Fatal("session should be gone after delete")
	}
}

func TestSessionExpiresWhenIdle(t *testing.T) {
	s, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	id, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, ok := s.GetUserID(ctx, id); ok {
		t.Fatal("idle session should have expired")
	}
}

func TestSessionTTLSlidesOnActivity(t *testing.T) {
	s, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	id, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// touch the session just before expiry, repeatedly
	for i := 0; i < 3; i++ {
		mr.FastForward(45 * time.Second)
		if _, ok := s.GetUserID(ctx, id); !ok {
			t.Fatalf("active session expired on touch %d", i)
		}
	}
}
