package models

import "fmt"

// UnknownChoiceError reports a value that is not part of an enumeration.
// Decoded wizard choices must never be silently defaulted, so parsers fail
// with this error instead.
type UnknownChoiceError struct {
	Kind  string
	Value string
}

func (e *UnknownChoiceError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Value)
}

// AircraftType enumerates the aircraft a schedule can be created for
type AircraftType string

const (
	AircraftValkyre  AircraftType = "VALKYRE"
	AircraftCargo    AircraftType = "CARGO"
	AircraftMaverick AircraftType = "MAVERICK"
	AircraftEC135    AircraftType = "EC135"
)

// AircraftTypes returns all aircraft in presentation order
func AircraftTypes() []AircraftType {
	return []AircraftType{AircraftValkyre, AircraftCargo, AircraftMaverick, AircraftEC135}
}

// DisplayName returns the human-readable name of the aircraft
func (a AircraftType) DisplayName() string {
	switch a {
	case AircraftValkyre:
		return "Valkyre"
	case AircraftCargo:
		return "Cargo Plane"
	case AircraftMaverick:
		return "Maverick"
	case AircraftEC135:
		return "EC135"
	}
	return string(a)
}

// ParseAircraftType parses an encoded aircraft name
func ParseAircraftType(s string) (AircraftType, error) {
	for _, a := range AircraftTypes() {
		if s == string(a) {
			return a, nil
		}
	}
	return "", &UnknownChoiceError{Kind: "aircraft type", Value: s}
}

// MissionType enumerates the mission kinds a schedule can fly
type MissionType string

const (
	MissionPatrol   MissionType = "PATROL"
	MissionAction   MissionType = "ACTION"
	MissionTraining MissionType = "TRAINING"
)

// MissionTypes returns all mission kinds in presentation order
func MissionTypes() []MissionType {
	return []MissionType{MissionPatrol, MissionAction, MissionTraining}
}

// DisplayName returns the human-readable name of the mission kind
func (m MissionType) DisplayName() string {
	switch m {
	case MissionPatrol:
		return "Patrol"
	case MissionAction:
		return "Action"
	case MissionTraining:
		return "Training"
	}
	return string(m)
}

// Emblem returns the emoji used to mark the mission kind on public displays
func (m MissionType) Emblem() string {
	switch m {
	case MissionAction:
		return "🔴"
	default:
		return "🔵"
	}
}

// ParseMissionType parses an encoded mission kind name
func ParseMissionType(s string) (MissionType, error) {
	for _, m := range MissionTypes() {
		if s == string(m) {
			return m, nil
		}
	}
	return "", &UnknownChoiceError{Kind: "mission type", Value: s}
}
