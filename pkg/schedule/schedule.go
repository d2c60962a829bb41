package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/flightroster/pkg/logger"
	"github.com/korjavin/flightroster/pkg/models"
	"github.com/korjavin/flightroster/pkg/storage"
)

const keyPrefix = "schedule:"

// Publisher maintains the visual surfaces that mirror schedule state. All
// formatting and message plumbing lives behind it.
type Publisher interface {
	// RefreshDisplay re-renders the schedule's public message
	RefreshDisplay(s *models.Schedule) error
	// RemoveDisplay retracts the schedule's public message
	RemoveDisplay(s *models.Schedule) error
	// RefreshSummary re-renders the overview of active schedules
	RefreshSummary(active []*models.Schedule) error
}

// Service manages flight schedule records
type Service struct {
	store     *storage.Store
	publisher Publisher
	logger    *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new schedule service
func New(store *storage.Store, publisher Publisher) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger.New("schedule"),
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex guarding one schedule's record
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func key(id string) string {
	return keyPrefix + id
}

// Get loads a schedule by id
func (s *Service) Get(id string) (*models.Schedule, error) {
	var sched models.Schedule
	if err := s.store.Get(key(id), &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// ActiveSchedules returns all schedules currently in the active state
func (s *Service) ActiveSchedules() ([]*models.Schedule, error) {
	keys, err := s.store.List(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	var active []*models.Schedule
	for _, k := range keys {
		var sched models.Schedule
		if err := s.store.Get(k, &sched); err != nil {
			s.logger.Error("Failed to load schedule %s: %v", k, err)
			continue
		}
		if sched.Status == models.StatusActive {
			active = append(active, &sched)
		}
	}
	return active, nil
}

// GenerateTitle derives a title from the count of currently active
// schedules. Two concurrent wizards may both observe the same count and
// propose the same title; the schedule id, not the title, is the identity.
func (s *Service) GenerateTitle() string {
	active, err := s.ActiveSchedules()
	if err != nil {
		s.logger.Error("Failed to count active schedules for title: %v", err)
		return "GRA-1"
	}
	return fmt.Sprintf("GRA-%d", len(active)+1)
}

// Create allocates a new schedule in the created state with an empty roster
func (s *Service) Create(title string, aircraft models.AircraftType, mission models.MissionType, creatorID, creatorName string) (*models.Schedule, error) {
	sched := &models.Schedule{
		ID:            uuid.NewString(),
		Title:         title,
		Aircraft:      aircraft,
		Mission:       mission,
		CreatedByID:   creatorID,
		CreatedByName: creatorName,
		Status:        models.StatusCreated,
		Passengers:    make(map[string]string),
		CreatedAt:     time.Now(),
	}

	if err := s.store.Set(key(sched.ID), sched); err != nil {
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}

	s.logger.Info("Created schedule %s (%s, %s/%s) by %s", sched.ID, title, aircraft, mission, creatorName)
	return sched, nil
}

// RegisterDisplay records the public message that displays the schedule and
// activates it. A schedule whose display never came up stays created and
// accepts no crew.
func (s *Service) RegisterDisplay(id, channelRef, messageRef string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sched, err := s.Get(id)
	if err != nil {
		return err
	}
	if sched.Status == models.StatusEnded {
		return fmt.Errorf("schedule %s already ended", id)
	}

	sched.Display = &models.DisplayRef{ChannelRef: channelRef, MessageRef: messageRef}
	sched.Status = models.StatusActive
	if err := s.store.Set(key(id), sched); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}

	s.logger.Info("Schedule %s active, display %s/%s", id, channelRef, messageRef)
	return nil
}

// AddPassenger boards a crew member onto an active schedule. Returns false
// when the schedule is missing, not active, or the member is already aboard.
func (s *Service) AddPassenger(id, userID, displayName string) bool {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sched, err := s.Get(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load schedule %s: %v", id, err)
		}
		return false
	}
	if sched.Status != models.StatusActive {
		return false
	}
	if _, aboard := sched.Passengers[userID]; aboard {
		return false
	}

	sched.Passengers[userID] = displayName
	if err := s.store.Set(key(id), sched); err != nil {
		s.logger.Error("Failed to store schedule %s: %v", id, err)
		return false
	}
	return true
}

// RemovePassenger disembarks a crew member. Returns false when the schedule
// is missing or the member is not aboard.
func (s *Service) RemovePassenger(id, userID string) bool {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sched, err := s.Get(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load schedule %s: %v", id, err)
		}
		return false
	}
	if sched.Status != models.StatusActive {
		return false
	}
	if _, aboard := sched.Passengers[userID]; !aboard {
		return false
	}

	delete(sched.Passengers, userID)
	if err := s.store.Set(key(id), sched); err != nil {
		s.logger.Error("Failed to store schedule %s: %v", id, err)
		return false
	}
	return true
}

// CanEnd reports whether an actor may terminate a schedule. Only the creator
// may end their schedule.
func (s *Service) CanEnd(id, actorID string) bool {
	sched, err := s.Get(id)
	if err != nil {
		return false
	}
	return sched.CreatedByID == actorID
}

// End transitions an active schedule to ended. Only the first call returns
// true; repeated calls and calls for unknown schedules return false.
func (s *Service) End(id string) bool {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sched, err := s.Get(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load schedule %s: %v", id, err)
		}
		return false
	}
	if sched.Status != models.StatusActive {
		return false
	}

	sched.Status = models.StatusEnded
	sched.EndedAt = time.Now()
	if err := s.store.Set(key(id), sched); err != nil {
		s.logger.Error("Failed to store schedule %s: %v", id, err)
		return false
	}

	s.logger.Info("Schedule %s (%s) ended", id, sched.Title)
	return true
}

// RefreshDisplay re-renders a schedule's public message through the publisher
func (s *Service) RefreshDisplay(id string) error {
	sched, err := s.Get(id)
	if err != nil {
		return err
	}
	if sched.Display == nil {
		return fmt.Errorf("schedule %s has no display", id)
	}
	return s.publisher.RefreshDisplay(sched)
}

// RemoveDisplay retracts a schedule's public message and clears the
// reference. Removing an already-removed display is a no-op.
func (s *Service) RemoveDisplay(id string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sched, err := s.Get(id)
	if err != nil {
		return err
	}
	if sched.Display == nil {
		return nil
	}

	if err := s.publisher.RemoveDisplay(sched); err != nil {
		return err
	}

	sched.Display = nil
	if err := s.store.Set(key(id), sched); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}
	return nil
}

// RefreshSummary re-renders the overview of active schedules
func (s *Service) RefreshSummary() error {
	active, err := s.ActiveSchedules()
	if err != nil {
		return err
	}
	return s.publisher.RefreshSummary(active)
}
