package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestLimiter_UnderThenOver(t *testing.T) {
	l := New(100, time.Minute)
	if l.IsOverLimit() {
		t.Fatal("fresh limiter should not be over limit")
	}
	l.Record(40)
	l.Record(40)
	if l.IsOverLimit() {
		t.Fatal("80/100 should still be admitted")
	}
	l.Record(20)
	if !l.IsOverLimit() {
		t.Fatal("100/100 should be over limit")
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := New(100, time.Minute)
	l.now = func() time.Time { return clock }

	l.Record(100)
	if !l.IsOverLimit() {
		t.Fatal("should be over limit right after recording the ceiling")
	}

	clock = clock.Add(59 * time.Second)
	if !l.IsOverLimit() {
		t.Fatal("sample still inside the window")
	}

	clock = clock.Add(2 * time.Second)
	if l.IsOverLimit() {
		t.Fatal("sample aged out, limiter should admit again")
	}
	if len(l.samples) != 0 {
		t.Errorf("expired samples should be pruned, have %d", len(l.samples))
	}
}

func TestLimiter_NegativeIgnored(t *testing.T) {
	l := New(10, time.Minute)
	l.Record(-5)
	if len(l.samples) != 0 {
		t.Fatal("negative samples must not be recorded")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(1_000_000, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Record(1)
				l.IsOverLimit()
			}
		}()
	}
	wg.Wait()
	if len(l.samples) != 5000 {
		t.Errorf("expected 5000 samples, got %d", len(l.samples))
	}
}
