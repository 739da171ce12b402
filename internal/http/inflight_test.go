package http

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestInFlightTracker_Counting(t *testing.T) {
	tracker := &InFlightTracker{}
	if got := tracker.Count(); got != 0 {
		t.Fatalf("initial Count() = %d, want 0", got)
	}

	tracker.Increment()
	tracker.Increment()
	if got := tracker.Count(); got != 2 {
		t.Errorf("Count() after two increments = %d, want 2", got)
	}

	tracker.Decrement()
	if got := tracker.Count(); got != 1 {
		t.Errorf("Count() after decrement = %d, want 1", got)
	}
	tracker.Decrement()
	if got := tracker.Count(); got != 0 {
		t.Errorf("Count() after draining = %d, want 0", got)
	}
}

func TestInFlightTracker_ConcurrentUse(t *testing.T) {
	tracker := &InFlightTracker{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Increment()
			tracker.Decrement()
		}()
	}
	wg.Wait()
	if got := tracker.Count(); got != 0 {
		t.Errorf("Count() after balanced concurrent use = %d, want 0", got)
	}
}

func TestWaitForZero_ReturnsWhenDrained(t *testing.T) {
	tracker := &InFlightTracker{}
	tracker.Increment()

	done := make(chan error, 1)
	go func() {
		done <- tracker.WaitForZero(context.Background(), time.Millisecond)
	}()

	time.Sleep(5 * time.Millisecond)
	tracker.Decrement()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForZero() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForZero did not return after count reached zero")
	}
}

func TestWaitForZero_ContextTimeout(t *testing.T) {
	tracker := &InFlightTracker{}
	tracker.Increment() // never decremented

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := tracker.WaitForZero(ctx, time.Millisecond)
	if err != context.DeadlineExceeded {
		t.Errorf("WaitForZero() error = %v, want context.DeadlineExceeded", err)
	}
}
