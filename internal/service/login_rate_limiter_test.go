package service

import (
	"testing"
	"time"
)

func TestLoginAttemptKey(t *testing.T) {
	if got := LoginAttemptKey(" 10.0.0.1 ", " Ann@X.io "); got != "ann@x.io|10.0.0.1" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := LoginAttemptKey("10.0.0.1", "  "); got != "" {
		t.Fatalf("expected empty key without email, got %q", got)
	}
}

func TestMemoryLoginRateLimiter_CountsOnlyFailures(t *testing.T) {
	l := NewLoginRateLimiter(time.Minute, 2).(*memoryLoginRateLimiter)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	key := "ann@x.io|10.0.0.1"

	for i := 0; i < 5; i++ {
		if !l.Allow(key) {
			t.Fatalf("allow without failures must not consume attempts (call %d)", i+1)
		}
	}

	l.RecordFailure(key)
	if !l.Allow(key) {
		t.Fatalf("expected allow after one failure")
	}
	l.RecordFailure(" ANN@X.IO|10.0.0.1 ")
	if l.Allow(key) {
		t.Fatalf("expected deny after reaching max failures")
	}
	if !l.Allow("ann@x.io|10.0.0.2") {
		t.Fatalf("expected other clients to be unaffected")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow(key) {
		t.Fatalf("expected allow once failures leave the window")
	}
}

func TestMemoryLoginRateLimiter_ResetClearsFailures(t *testing.T) {
	l := NewLoginRateLimiter(time.Minute, 1)
	l.RecordFailure("k")
	if l.Allow("k") {
		t.Fatalf("expected deny after failure")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Fatalf("expected allow after reset")
	}
}

func TestMemoryLoginRateLimiter_PrunesStaleKeys(t *testing.T) {
	l := NewLoginRateLimiter(time.Minute, 3).(*memoryLoginRateLimiter)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("warmup")
	for _, key := range []string{"a@x.io|1", "b@x.io|1", "c@x.io|1"} {
		l.RecordFailure(key)
	}
	if len(l.failures) != 3 {
		t.Fatalf("expected 3 tracked keys, got %d", len(l.failures))
	}

	now = now.Add(2 * time.Minute)
	l.Allow("someone-else")
	if len(l.failures) != 0 {
		t.Fatalf("expected stale keys to be dropped, got %d", len(l.failures))
	}
}

func TestMemoryLoginRateLimiter_EmptyKeyAndDefaults(t *testing.T) {
	l := NewLoginRateLimiter(0, 0).(*memoryLoginRateLimiter)
	if l.max != 1 || l.window != time.Minute {
		t.Fatalf("unexpected defaults: max=%d window=%v", l.max, l.window)
	}
	if l.Allow("   ") {
		t.Fatalf("expected empty key to be rejected")
	}
	l.RecordFailure("   ")
	if len(l.failures) != 0 {
		t.Fatalf("expected empty key not to be tracked")
	}
}
