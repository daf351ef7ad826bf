package debounce_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/debounce"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const delay = 800 * time.Millisecond

func TestDebouncer_RapidValuesOnlySettleFinal(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New("", delay, debounce.WithClock(clock))

	var observed []string
	d.OnStable(func(v string) { observed = append(observed, v) })

	for _, v := range []string{"a", "ab", "abc", "abcd"} {
		d.Set(v)
		clock.Advance(delay / 2)
	}

	if got := d.Stable(); got != "" {
		t.Fatalf("stable value changed while input was active: %q", got)
	}
	if len(observed) != 0 {
		t.Fatalf("expected no notifications yet, got %v", observed)
	}

	clock.Advance(delay)

	if diff := cmp.Diff([]string{"abcd"}, observed); diff != "" {
		t.Fatalf("observed values mismatch (-want +got):\n%s", diff)
	}
	if got := d.Stable(); got != "abcd" {
		t.Fatalf("expected stable abcd, got %q", got)
	}
}

func TestDebouncer_HeldValueFiresExactlyOnce(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New("", delay, debounce.WithClock(clock))

	calls := 0
	d.OnStable(func(string) { calls++ })

	d.Set("settled")
	clock.Advance(delay)
	clock.Advance(10 * delay)

	if calls != 1 {
		t.Fatalf("expected exactly one stable update, got %d", calls)
	}
	if d.Pending() {
		t.Fatalf("expected no pending timer after settle")
	}
}

func TestDebouncer_AtMostOnePendingTimer(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New(0, delay, debounce.WithClock(clock))

	for i := 1; i <= 5; i++ {
		d.Set(i)
		if got := clock.Pending(); got != 1 {
			t.Fatalf("after Set(%d): expected 1 pending timer, got %d", i, got)
		}
	}
	if got := d.Raw(); got != 5 {
		t.Fatalf("expected raw 5, got %d", got)
	}
}

func TestDebouncer_UnchangedValueDoesNotNotify(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New("same", delay, debounce.WithClock(clock))

	calls := 0
	d.OnStable(func(string) { calls++ })

	d.Set("other")
	d.Set("same")
	clock.Advance(delay)

	if calls != 0 {
		t.Fatalf("expected no notification when settled value is unchanged, got %d", calls)
	}
}

func TestDebouncer_StopCancelsPendingUpdate(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New("", delay, debounce.WithClock(clock))

	calls := 0
	d.OnStable(func(string) { calls++ })

	d.Set("late")
	d.Stop()
	clock.Advance(2 * delay)

	if calls != 0 {
		t.Fatalf("listener fired after teardown")
	}
	if got := clock.Pending(); got != 0 {
		t.Fatalf("expected leaked timers to be cancelled, got %d", got)
	}

	d.Set("ignored")
	if got := d.Raw(); got != "late" {
		t.Fatalf("Set after Stop should be ignored, raw=%q", got)
	}
	d.Stop()
}

func TestDebouncer_Flush(t *testing.T) {
	clock := testsupport.NewManualClock()
	d := debounce.New("", delay, debounce.WithClock(clock))

	var observed []string
	d.OnStable(func(v string) { observed = append(observed, v) })

	d.Flush()
	d.Set("now")
	d.Flush()
	clock.Advance(delay)

	if diff := cmp.Diff([]string{"now"}, observed); diff != "" {
		t.Fatalf("flush mismatch (-want +got):\n%s", diff)
	}
}

func TestDebouncer_ZeroDelaySettlesSynchronously(t *testing.T) {
	d := debounce.New("", 0)

	var observed []string
	d.OnStable(func(v string) { observed = append(observed, v) })

	d.Set("x")
	d.Set("y")

	if diff := cmp.Diff([]string{"x", "y"}, observed); diff != "" {
		t.Fatalf("zero delay mismatch (-want +got):\n%s", diff)
	}
}

func TestDebouncer_RuntimeClock(t *testing.T) {
	d := debounce.New("", 5*time.Millisecond)
	defer d.Stop()

	done := make(chan string, 1)
	d.OnStable(func(v string) { done <- v })
	d.Set("real")

	select {
	case got := <-done:
		if got != "real" {
			t.Fatalf("expected real, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for stable value")
	}
}
