package scheduler

import (
	"testing"
	"time"
)

type fakeSummary struct {
	refreshed chan struct{}
}

func (s *fakeSummary) RefreshSummary() error {
	select {
	case s.refreshed <- struct{}{}:
	default:
	}
	return nil
}

func TestPeriodicRefresh(t *testing.T) {
	summary := &fakeSummary{refreshed: make(chan struct{}, 1)}
	svc := New(summary, 10*time.Millisecond)

	svc.Start()
	defer svc.Stop()

	select {
	case <-summary.refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a summary refresh within the interval")
	}
}
