package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
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

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 200; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Errorf("calculateBackoff with long base = %v, want base", got)
	}
}

// flakySource fails the first n fetches.
type flakySource struct {
	failFirst int32
	calls     atomic.Int32
}

func (f *flakySource) FetchCatalog(ctx context.Context) (*athlete.Catalog, error) {
	if f.calls.Add(1) <= f.failFirst {
		return nil, errors.New("upstream unavailable")
	}
	cat := athlete.Fixture()
	return &cat, nil
}

func (f *flakySource) LookupProfile(ctx context.Context, ref string) (*athlete.Profile, error) {
	p := athlete.Fixture().Primary
	return &p, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPoller_RefreshesOnTickAndTrigger(t *testing.T) {
	store := &state.Store{}
	src := &flakySource{}

	ctx, cancel := context.WithCancel(context.Background())
	p := StartPoller(ctx, store, src, time.Hour, nil)

	p.Trigger()
	waitFor(t, func() bool { return store.Snapshot().HasCatalog })
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}

	p.Trigger()
	waitFor(t, func() bool { return store.Snapshot().Generation == 2 })

	cancel()
	<-p.Done()
}

func TestPoller_RecordsFailuresThenRecovers(t *testing.T) {
	store := &state.Store{}
	src := &flakySource{failFirst: 2}

	ctx, cancel := context.WithCancel(context.Background())
	p := StartPoller(ctx, store, src, 10*time.Millisecond, nil)

	waitFor(t, func() bool { return store.Snapshot().HasCatalog })
	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("snapshot after recovery = failures %d err %v", snap.ConsecutiveFailures, snap.LastError)
	}
	if got := src.calls.Load(); got < 3 {
		t.Fatalf("calls = %d, want at least 3", got)
	}

	cancel()
	<-p.Done()
}

func TestRefresh_UpdatesStore(t *testing.T) {
	store := &state.Store{}
	if err := refresh(context.Background(), store, athlete.NewStatic(athlete.Fixture())); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	if !store.Snapshot().HasCatalog {
		t.Fatal("store not populated")
	}

	if err := refresh(context.Background(), store, &flakySource{failFirst: 1}); err == nil {
		t.Fatal("expected refresh error")
	}
	if store.Snapshot().ConsecutiveFailures != 1 {
		t.Fatal("failure not recorded")
	}
}
