package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type countingUpstream struct {
	mu            sync.Mutex
	usernameCalls int
	firmCalls     int
	taken         map[string]bool
	err           error
}

func (u *countingUpstream) CheckUsername(_ context.Context, value string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.usernameCalls++
	if u.err != nil {
		return false, u.err
	}
	return !u.taken[value], nil
}

func (u *countingUpstream) CheckFirmName(_ context.Context, value string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.firmCalls++
	if u.err != nil {
		return false, u.err
	}
	return !u.taken[value], nil
}

func newTestChecker(upstream *countingUpstream) *Checker {
	return NewChecker(upstream, NewCache(), NewCache())
}

func TestCheckUsernameMemoizes(t *testing.T) {
	upstream := &countingUpstream{taken: map[string]bool{"broker": true}}
	checker := newTestChecker(upstream)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		available, err := checker.CheckUsername(ctx, "broker")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if available {
			t.Fatalf("broker should be taken")
		}
	}
	if upstream.usernameCalls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", upstream.usernameCalls)
	}

	// Normalization shares the cache entry.
	if _, err := checker.CheckUsername(ctx, "  BROKER "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstream.usernameCalls != 1 {
		t.Fatalf("normalized repeat hit upstream, calls=%d", upstream.usernameCalls)
	}
}

func TestCheckUsernameAndFirmNameUseSeparateCaches(t *testing.T) {
	upstream := &countingUpstream{taken: map[string]bool{}}
	checker := newTestChecker(upstream)
	ctx := context.Background()

	if _, err := checker.CheckUsername(ctx, "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := checker.CheckFirmName(ctx, "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstream.usernameCalls != 1 || upstream.firmCalls != 1 {
		t.Fatalf("expected one call each, got %d/%d", upstream.usernameCalls, upstream.firmCalls)
	}
}

func TestCheckErrorsAreNotCached(t *testing.T) {
	upstream := &countingUpstream{taken: map[string]bool{}, err: errors.New("upstream down")}
	checker := newTestChecker(upstream)
	ctx := context.Background()

	if _, err := checker.CheckUsername(ctx, "acme"); err == nil {
		t.Fatalf("expected an error")
	}

	upstream.mu.Lock()
	upstream.err = nil
	upstream.mu.Unlock()

	available, err := checker.CheckUsername(ctx, "acme")
	if err != nil || !available {
		t.Fatalf("expected retry to succeed, got %v %v", available, err)
	}
	if upstream.usernameCalls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", upstream.usernameCalls)
	}
}

func TestCheckEmptyValue(t *testing.T) {
	checker := newTestChecker(&countingUpstream{})

	if _, err := checker.CheckUsername(context.Background(), "   "); !errors.Is(err, ErrValueRequired) {
		t.Fatalf("expected ErrValueRequired, got %v", err)
	}
}

func TestSuggestUsername(t *testing.T) {
	cases := []struct {
		name  string
		taken []string
		base  string
		want  string
	}{
		{name: "base free", taken: nil, base: "Rakesh", want: "rakesh"},
		{name: "first suffix", taken: []string{"rakesh"}, base: "rakesh", want: "rakesh1"},
		{name: "last attempt", taken: []string{"rakesh", "rakesh1", "rakesh2", "rakesh3"}, base: "rakesh", want: "rakesh4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			taken := map[string]bool{}
			for _, value := range tc.taken {
				taken[value] = true
			}
			checker := newTestChecker(&countingUpstream{taken: taken})

			got, err := checker.SuggestUsername(context.Background(), tc.base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSuggestUsernameExhausted(t *testing.T) {
	taken := map[string]bool{
		"rakesh": true, "rakesh1": true, "rakesh2": true, "rakesh3": true, "rakesh4": true,
	}
	upstream := &countingUpstream{taken: taken}
	checker := newTestChecker(upstream)

	if _, err := checker.SuggestUsername(context.Background(), "rakesh"); err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if upstream.usernameCalls != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", upstream.usernameCalls)
	}
}
