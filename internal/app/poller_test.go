package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

type countingPoller struct {
	calls atomic.Int32
	err   error
}

func (p *countingPoller) PollShelves(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestStartShelfPoller_PollsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &countingPoller{}
	StartShelfPoller(ctx, p, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for p.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d calls, want at least 3", p.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	// Allow an in-flight tick to finish, then confirm polling stopped.
	time.Sleep(20 * time.Millisecond)
	stopped := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := p.calls.Load(); got != stopped {
		t.Fatalf("poller kept running after cancel: %d -> %d calls", stopped, got)
	}
}

func TestStartShelfPoller_NegativeDisables(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := &countingPoller{err: errors.New("unused")}
	StartShelfPoller(ctx, p, slog.New(slog.NewTextHandler(io.Discard, nil)), -1)
	time.Sleep(20 * time.Millisecond)
	if got := p.calls.Load(); got != 0 {
		t.Fatalf("disabled poller made %d calls", got)
	}
}
