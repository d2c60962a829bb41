package scheduler

import (
	"time"

	"github.com/korjavin/flightroster/pkg/logger"
)

// Summary is the slice of the schedule store the refresher needs
type Summary interface {
	RefreshSummary() error
}

// Service periodically refreshes the active-schedule summary
type Service struct {
	summary  Summary
	interval time.Duration
	logger   *logger.Logger
	stopChan chan struct{}
}

// New creates a new scheduler service
func New(summary Summary, interval time.Duration) *Service {
	return &Service{
		summary:  summary,
		interval: interval,
		logger:   logger.New("scheduler"),
		stopChan: make(chan struct{}),
	}
}

// Start starts the background refresh loop
func (s *Service) Start() {
	s.logger.Info("Starting summary refresher with interval %v", s.interval)
	go s.run()
}

// Stop stops the background refresh loop
func (s *Service) Stop() {
	s.logger.Info("Stopping summary refresher")
	close(s.stopChan)
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.summary.RefreshSummary(); err != nil {
				s.logger.Error("Periodic summary refresh failed: %v", err)
			}
		case <-s.stopChan:
			return
		}
	}
}
