package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("rate limited")

func alwaysTransient(error) bool { return true }

func TestDo_SucceedsFirstTry(t *testing.T) {
	var slept []time.Duration
	p := Policy{MaxAttempts: 5, BaseDelay: time.Second, Sleep: recordSleep(&slept)}

	calls := 0
	err := p.Do(context.Background(), "test", alwaysTransient, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d; want 1", calls)
	}
	if len(slept) != 0 {
		t.Fatalf("slept %v; want no sleeps", slept)
	}
}

func TestDo_BackoffSequence(t *testing.T) {
	var slept []time.Duration
	p := Policy{MaxAttempts: 5, BaseDelay: time.Second, Sleep: recordSleep(&slept)}

	calls := 0
	err := p.Do(context.Background(), "test", alwaysTransient, func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("err = %v; want %v", err, errTransient)
	}
	if calls != 5 {
		t.Fatalf("calls = %d; want 5", calls)
	}

	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %v; want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("delay %d = %v; want %v", i, slept[i], want[i])
		}
	}
}

func TestDo_RecoversMidway(t *testing.T) {
	var slept []time.Duration
	p := Policy{MaxAttempts: 5, BaseDelay: time.Second, Sleep: recordSleep(&slept)}

	calls := 0
	err := p.Do(context.Background(), "test", alwaysTransient, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d; want 3", calls)
	}
}

func TestDo_TerminalErrorImmediate(t *testing.T) {
	var slept []time.Duration
	p := Policy{MaxAttempts: 5, BaseDelay: time.Second, Sleep: recordSleep(&slept)}

	errTerminal := errors.New("bad request")
	calls := 0
	err := p.Do(context.Background(), "test", func(err error) bool {
		return !errors.Is(err, errTerminal)
	}, func() error {
		calls++
		return errTerminal
	})
	if !errors.Is(err, errTerminal) {
		t.Fatalf("err = %v; want %v", err, errTerminal)
	}
	if calls != 1 {
		t.Fatalf("calls = %d; want 1", calls)
	}
	if len(slept) != 0 {
		t.Fatalf("slept %v; want no sleeps", slept)
	}
}

func TestDo_ContextCancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	err := p.Do(ctx, "test", alwaysTransient, func() error {
		return errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}

func recordSleep(slept *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
}
