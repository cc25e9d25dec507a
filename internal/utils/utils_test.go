package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitFor(t *testing.T) {
	var slept []time.Duration
	originalSleep := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleep = originalSleep }()

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("expected no error for zero duration, got %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("expected no sleep for zero duration, got %v", slept)
	}

	if err := WaitFor(context.Background(), 100*time.Millisecond); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slept) != 1 || slept[0] != 100*time.Millisecond {
		t.Fatalf("unexpected sleeps: %v", slept)
	}
}

func TestWaitForCancelled(t *testing.T) {
	block := make(chan struct{})
	originalSleep := sleep
	sleep = func(time.Duration) { <-block }
	defer func() {
		close(block)
		sleep = originalSleep
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitFor(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
