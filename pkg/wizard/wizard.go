// Package wizard drives the multi-step schedule creation flow and the
// board/leave/end actions on published schedules. Every step is resolved
// from the incoming event's token alone; the router holds no per-user state
// between steps.
package wizard

import (
	"errors"

	"github.com/korjavin/flightroster/pkg/models"
)

// ErrAuthorizationDenied is returned when an actor may not end a schedule
var ErrAuthorizationDenied = errors.New("authorization denied")

// ErrOperationFailed is returned when the store cannot complete a mutation
var ErrOperationFailed = errors.New("operation failed")

// Store is the schedule collaborator consumed by the router. Persistence and
// record ownership live behind it.
type Store interface {
	GenerateTitle() string
	Create(title string, aircraft models.AircraftType, mission models.MissionType, creatorID, creatorName string) (*models.Schedule, error)
	AddPassenger(scheduleID, userID, displayName string) bool
	RemovePassenger(scheduleID, userID string) bool
	CanEnd(scheduleID, actorID string) bool
	End(scheduleID string) bool
	RegisterDisplay(scheduleID, channelRef, messageRef string) error
	RefreshDisplay(scheduleID string) error
	RefreshSummary() error
}

// Event is one interaction event, already stripped of transport detail.
// Token carries all wizard progress; the refs identify the surface the event
// came from.
type Event struct {
	Token       string
	ActorID     string
	ActorName   string
	ChannelRef  string
	MessageRef  string
	CallbackRef string
}

// Choice is one token-carrying button of a wizard step
type Choice struct {
	Label string
	Token string
}

// StepView is the presentation of one wizard step
type StepView struct {
	Prompt  string
	Lines   []string
	Choices []Choice
}

// Presenter renders wizard steps and schedule views. All formatting and
// message delivery concerns live behind it.
type Presenter interface {
	// BeginWizard opens a fresh wizard surface for the actor
	BeginWizard(ev Event, view StepView) error
	// ShowStep replaces the wizard surface the event came from
	ShowStep(ev Event, view StepView) error
	// Dismiss removes the wizard surface the event came from
	Dismiss(ev Event) error
	// Acknowledge shows a transient acknowledgement to the actor
	Acknowledge(ev Event, text string) error
	// PublishSchedule posts the public view of a schedule and returns the
	// display reference
	PublishSchedule(ev Event, s *models.Schedule) (channelRef, messageRef string, err error)
}
