package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitWithinBurst(t *testing.T) {
	dl := NewDomainLimiter(100, 4)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 4; i++ {
		if err := dl.Wait(ctx, "https://shop.test/page"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("burst requests blocked for %v", elapsed)
	}
}

func TestWaitThrottlesPerHost(t *testing.T) {
	dl := NewDomainLimiter(10, 1)
	ctx := context.Background()

	if err := dl.Wait(ctx, "https://a.test/1"); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if err := dl.Wait(ctx, "https://a.test/2"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("second request on same host not throttled (%v)", elapsed)
	}

	// A different host has its own bucket and proceeds immediately.
	start = time.Now()
	if err := dl.Wait(ctx, "https://b.test/1"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("other host throttled by first host's bucket (%v)", elapsed)
	}
}

func TestWaitUnparseableURLPassesThrough(t *testing.T) {
	dl := NewDomainLimiter(1, 1)
	if err := dl.Wait(context.Background(), "::bad::url"); err != nil {
		t.Errorf("Wait: %v", err)
	}
}

func TestWaitCancelledContext(t *testing.T) {
	dl := NewDomainLimiter(1, 1)
	ctx := context.Background()
	if err := dl.Wait(ctx, "https://c.test/1"); err != nil {
		t.Fatal(err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := dl.Wait(cancelled, "https://c.test/2"); err == nil {
		t.Error("expected error on cancelled context")
	}
}
