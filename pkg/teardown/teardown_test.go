package teardown

import (
	"errors"
	"testing"
)

type fakeStore struct {
	removeErr  error
	refreshErr error

	removed   []string
	refreshes int
}

func (s *fakeStore) RemoveDisplay(scheduleID string) error {
	s.removed = append(s.removed, scheduleID)
	return s.removeErr
}

func (s *fakeStore) RefreshSummary() error {
	s.refreshes++
	return s.refreshErr
}

func TestRunPerformsBothActions(t *testing.T) {
	store := &fakeStore{}
	New(store).Run("sched-1")

	if len(store.removed) != 1 || store.removed[0] != "sched-1" {
		t.Fatalf("expected display removal for sched-1, got %v", store.removed)
	}
	if store.refreshes != 1 {
		t.Fatalf("expected one summary refresh, got %d", store.refreshes)
	}
}

func TestRunSummaryStillAttemptedAfterRemoveFailure(t *testing.T) {
	store := &fakeStore{removeErr: errors.New("display gone")}
	New(store).Run("sched-1")

	if store.refreshes != 1 {
		t.Fatalf("expected summary refresh despite removal failure, got %d", store.refreshes)
	}
}

func TestRunSwallowsAllFailures(t *testing.T) {
	store := &fakeStore{
		removeErr:  errors.New("display gone"),
		refreshErr: errors.New("summary gone"),
	}

	// Must not panic or propagate anything.
	New(store).Run("sched-1")

	if len(store.removed) != 1 || store.refreshes != 1 {
		t.Fatalf("expected both actions attempted, got removed=%v refreshes=%d", store.removed, store.refreshes)
	}
}
