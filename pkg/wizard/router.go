package wizard

import (
	"fmt"

	"github.com/korjavin/flightroster/pkg/logger"
	"github.com/korjavin/flightroster/pkg/messages"
	"github.com/korjavin/flightroster/pkg/models"
	"github.com/korjavin/flightroster/pkg/teardown"
	"github.com/korjavin/flightroster/pkg/token"
)

// Router dispatches interaction events to wizard steps and schedule actions
type Router struct {
	store     Store
	presenter Presenter
	msgs      *messages.Service
	teardown  *teardown.Orchestrator
	logger    *logger.Logger
}

// New creates a new wizard router
func New(store Store, presenter Presenter, msgs *messages.Service, td *teardown.Orchestrator) *Router {
	return &Router{
		store:     store,
		presenter: presenter,
		msgs:      msgs,
		teardown:  td,
		logger:    logger.New("wizard"),
	}
}

// HandleEvent resolves one interaction event. Wizard-step faults abort only
// the step: the actor sees a generic retry message and the returned error
// carries the cause for logging.
func (r *Router) HandleEvent(ev Event) error {
	action, params, err := token.Decode(ev.Token)
	if err != nil {
		r.logger.Warn("Rejected token from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}

	switch action {
	case token.ActionNew:
		return r.startWizard(ev)
	case token.ActionAircraft:
		return r.aircraftChosen(ev, params[0])
	case token.ActionMission:
		return r.missionChosen(ev, params[0], params[1])
	case token.ActionConfirm:
		return r.confirm(ev, params)
	case token.ActionCancel:
		return r.cancel(ev)
	case token.ActionBoard:
		return r.board(ev, params[0])
	case token.ActionLeave:
		return r.leave(ev, params[0])
	case token.ActionEnd:
		return r.end(ev, params[0])
	}

	// Decode only returns known actions; this is unreachable with a
	// well-formed token table.
	return &token.MalformedTokenError{Token: ev.Token, Reason: "unroutable action"}
}

func (r *Router) acknowledge(ev Event, text string) {
	if err := r.presenter.Acknowledge(ev, text); err != nil {
		r.logger.Error("Failed to acknowledge event from %s: %v", ev.ActorID, err)
	}
}

// startWizard opens the wizard with the aircraft choice
func (r *Router) startWizard(ev Event) error {
	view := StepView{
		Prompt: "Select the aircraft for the new schedule:",
	}
	for _, a := range models.AircraftTypes() {
		view.Choices = append(view.Choices, Choice{
			Label: a.DisplayName(),
			Token: token.Encode(token.ActionAircraft, string(a)),
		})
	}

	if err := r.presenter.BeginWizard(ev, view); err != nil {
		return fmt.Errorf("begin wizard: %w", err)
	}
	return nil
}

// aircraftChosen presents the mission choice for the chosen aircraft
func (r *Router) aircraftChosen(ev Event, aircraftStr string) error {
	aircraft, err := models.ParseAircraftType(aircraftStr)
	if err != nil {
		r.logger.Warn("Rejected aircraft choice from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}

	view := StepView{
		Prompt: "Select the mission type for the schedule:",
		Lines:  []string{"Aircraft: " + aircraft.DisplayName()},
	}
	for _, m := range models.MissionTypes() {
		view.Choices = append(view.Choices, Choice{
			Label: m.DisplayName(),
			Token: token.Encode(token.ActionMission, string(aircraft), string(m)),
		})
	}

	if err := r.presenter.ShowStep(ev, view); err != nil {
		return fmt.Errorf("show mission step: %w", err)
	}
	return nil
}

// missionChosen proposes a title and presents the confirm/cancel pair
func (r *Router) missionChosen(ev Event, aircraftStr, missionStr string) error {
	aircraft, err := models.ParseAircraftType(aircraftStr)
	if err != nil {
		r.logger.Warn("Rejected aircraft choice from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}
	mission, err := models.ParseMissionType(missionStr)
	if err != nil {
		r.logger.Warn("Rejected mission choice from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}

	title := r.store.GenerateTitle()

	view := StepView{
		Prompt: "Confirm the new flight schedule:",
		Lines: []string{
			"Title: " + title,
			"Aircraft: " + aircraft.DisplayName(),
			"Mission: " + mission.DisplayName(),
		},
		Choices: []Choice{
			{Label: "Confirm", Token: token.Encode(token.ActionConfirm, string(aircraft), string(mission), title)},
			{Label: "Cancel", Token: token.Encode(token.ActionCancel)},
		},
	}

	if err := r.presenter.ShowStep(ev, view); err != nil {
		return fmt.Errorf("show confirm step: %w", err)
	}
	return nil
}

// confirm creates the schedule, publishes its display and activates it
func (r *Router) confirm(ev Event, params []string) error {
	aircraft, err := models.ParseAircraftType(params[0])
	if err != nil {
		r.logger.Warn("Rejected aircraft choice from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}
	mission, err := models.ParseMissionType(params[1])
	if err != nil {
		r.logger.Warn("Rejected mission choice from %s: %v", ev.ActorID, err)
		r.acknowledge(ev, r.msgs.RetryStep())
		return err
	}

	// Confirm tokens are size-bounded; a dropped title is regenerated, not
	// an error.
	title := ""
	if len(params) > 2 && params[2] != "" {
		title = params[2]
	} else {
		title = r.store.GenerateTitle()
	}

	if err := r.presenter.Dismiss(ev); err != nil {
		r.logger.Error("Failed to dismiss wizard surface: %v", err)
	}

	sched, err := r.store.Create(title, aircraft, mission, ev.ActorID, ev.ActorName)
	if err != nil {
		r.logger.Error("Failed to create schedule: %v", err)
		r.acknowledge(ev, r.msgs.GenericError())
		return fmt.Errorf("%w: create schedule: %v", ErrOperationFailed, err)
	}

	channelRef, messageRef, err := r.presenter.PublishSchedule(ev, sched)
	if err != nil {
		r.logger.Error("Failed to publish schedule %s: %v", sched.ID, err)
		r.acknowledge(ev, r.msgs.GenericError())
		return fmt.Errorf("%w: publish schedule: %v", ErrOperationFailed, err)
	}

	if err := r.store.RegisterDisplay(sched.ID, channelRef, messageRef); err != nil {
		r.logger.Error("Failed to register display for schedule %s: %v", sched.ID, err)
		r.acknowledge(ev, r.msgs.GenericError())
		return fmt.Errorf("%w: register display: %v", ErrOperationFailed, err)
	}

	r.acknowledge(ev, r.msgs.ScheduleCreated(title))

	// The overview is a secondary surface; a failed refresh does not undo
	// the creation.
	if err := r.store.RefreshSummary(); err != nil {
		r.logger.Error("Failed to refresh summary after creating %s: %v", sched.ID, err)
	}
	return nil
}

// cancel discards the in-flight wizard; no schedule exists at this point
func (r *Router) cancel(ev Event) error {
	if err := r.presenter.Dismiss(ev); err != nil {
		r.logger.Error("Failed to dismiss wizard surface: %v", err)
	}
	r.acknowledge(ev, r.msgs.ScheduleCancelled())
	return nil
}

// board adds the actor to a schedule's roster
func (r *Router) board(ev Event, scheduleID string) error {
	if !r.store.AddPassenger(scheduleID, ev.ActorID, ev.ActorName) {
		r.acknowledge(ev, r.msgs.BoardFailed())
		return nil
	}

	if err := r.store.RefreshDisplay(scheduleID); err != nil {
		r.logger.Error("Failed to refresh display for schedule %s: %v", scheduleID, err)
	}
	r.acknowledge(ev, r.msgs.Boarded())
	return nil
}

// leave removes the actor from a schedule's roster
func (r *Router) leave(ev Event, scheduleID string) error {
	if !r.store.RemovePassenger(scheduleID, ev.ActorID) {
		r.acknowledge(ev, r.msgs.LeaveFailed())
		return nil
	}

	if err := r.store.RefreshDisplay(scheduleID); err != nil {
		r.logger.Error("Failed to refresh display for schedule %s: %v", scheduleID, err)
	}
	r.acknowledge(ev, r.msgs.Left())
	return nil
}

// end terminates a schedule and runs the teardown actions
func (r *Router) end(ev Event, scheduleID string) error {
	if !r.store.CanEnd(scheduleID, ev.ActorID) {
		r.acknowledge(ev, r.msgs.EndDenied())
		return fmt.Errorf("%w: actor %s, schedule %s", ErrAuthorizationDenied, ev.ActorID, scheduleID)
	}

	if !r.store.End(scheduleID) {
		r.acknowledge(ev, r.msgs.EndFailed())
		return fmt.Errorf("%w: end schedule %s", ErrOperationFailed, scheduleID)
	}

	// The transition is committed; teardown failures stay local.
	r.teardown.Run(scheduleID)

	r.acknowledge(ev, r.msgs.ScheduleEnded())
	return nil
}
