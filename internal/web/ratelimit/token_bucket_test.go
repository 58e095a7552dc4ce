package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucketAllowsUpToCapacity(t *testing.T) {
	tb := New(Config{Capacity: 2, RefillRate: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		info, err := tb.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !info.Allowed {
			t.Fatalf("request %d: expected allowed", i)
		}
	}

	info, err := tb.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if info.Allowed {
		t.Fatalf("third request should be rate limited")
	}
}

func TestTokenBucketIsolatesKeys(t *testing.T) {
	tb := New(Config{Capacity: 1, RefillRate: time.Minute})
	ctx := context.Background()

	infoA, _ := tb.Allow(ctx, "a")
	infoB, _ := tb.Allow(ctx, "b")
	if !infoA.Allowed || !infoB.Allowed {
		t.Fatalf("distinct keys should each get their own budget: a=%v b=%v", infoA, infoB)
	}
}
