// Package teardown runs the cleanup actions that follow a schedule's
// termination. Each action is attempted independently; one failure never
// blocks the others and never invalidates the committed lifecycle change.
package teardown

import "github.com/korjavin/flightroster/pkg/logger"

// Store is the slice of the schedule store the orchestrator needs
type Store interface {
	RemoveDisplay(scheduleID string) error
	RefreshSummary() error
}

// Orchestrator performs post-termination cleanup
type Orchestrator struct {
	store  Store
	logger *logger.Logger
}

// New creates a new teardown orchestrator
func New(store Store) *Orchestrator {
	return &Orchestrator{
		store:  store,
		logger: logger.New("teardown"),
	}
}

// Run retracts the schedule's public display and refreshes the
// active-schedule summary. Failures are logged and swallowed.
func (o *Orchestrator) Run(scheduleID string) {
	if err := o.store.RemoveDisplay(scheduleID); err != nil {
		o.logger.Error("Failed to remove display for schedule %s: %v", scheduleID, err)
	}

	if err := o.store.RefreshSummary(); err != nil {
		o.logger.Error("Failed to refresh summary after ending schedule %s: %v", scheduleID, err)
	}
}
