package models

import (
	"sort"
	"time"
)

// ScheduleStatus is the lifecycle state of a flight schedule
type ScheduleStatus string

const (
	// StatusCreated is the state between confirmed creation and the public
	// display coming up
	StatusCreated ScheduleStatus = "created"
	// StatusActive is the state while the schedule accepts crew
	StatusActive ScheduleStatus = "active"
	// StatusEnded is terminal; no schedule leaves this state
	StatusEnded ScheduleStatus = "ended"
)

// DisplayRef identifies the public message that displays a schedule
type DisplayRef struct {
	ChannelRef string `json:"channel_ref"`
	MessageRef string `json:"message_ref"`
}

// Schedule represents one flight assignment with its crew roster
type Schedule struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Aircraft      AircraftType      `json:"aircraft"`
	Mission       MissionType       `json:"mission"`
	CreatedByID   string            `json:"created_by_id"`
	CreatedByName string            `json:"created_by_name"`
	Status        ScheduleStatus    `json:"status"`
	Passengers    map[string]string `json:"passengers"` // UserID -> display name
	Display       *DisplayRef       `json:"display,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	EndedAt       time.Time         `json:"ended_at,omitempty"`
}

// PassengerNames returns the display names of the boarded crew, sorted for
// stable rendering
func (s *Schedule) PassengerNames() []string {
	names := make([]string, 0, len(s.Passengers))
	for _, name := range s.Passengers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
