// Package token encodes wizard progress into the opaque strings carried by
// inline-keyboard buttons. A token is self-contained: the first field names
// the action, the remaining fields are the positional parameters accumulated
// so far. Nothing about an in-flight wizard is kept server-side.
package token

import (
	"fmt"
	"strings"
)

// Delimiter joins token fields. No field value may contain it; callers only
// encode enum names, UUIDs and generated titles.
const Delimiter = ":"

// Action is the discriminator carried in a token's first field
type Action string

const (
	// ActionNew starts the schedule creation wizard
	ActionNew Action = "new"
	// ActionAircraft carries the chosen aircraft
	ActionAircraft Action = "aircraft"
	// ActionMission carries aircraft and the chosen mission kind
	ActionMission Action = "mission"
	// ActionConfirm carries aircraft, mission and (optionally) the proposed
	// title; the title is regenerated at confirm time when absent
	ActionConfirm Action = "confirm"
	// ActionCancel abandons the wizard
	ActionCancel Action = "cancel"
	// ActionBoard adds the actor to a schedule's roster
	ActionBoard Action = "board"
	// ActionLeave removes the actor from a schedule's roster
	ActionLeave Action = "leave"
	// ActionEnd terminates a schedule
	ActionEnd Action = "end"
)

// minParams is the number of parameters each action requires. A token with
// fewer fields is malformed, never partially decoded.
var minParams = map[Action]int{
	ActionNew:      0,
	ActionAircraft: 1,
	ActionMission:  2,
	ActionConfirm:  2,
	ActionCancel:   0,
	ActionBoard:    1,
	ActionLeave:    1,
	ActionEnd:      1,
}

// MalformedTokenError reports a token that cannot be decoded for any step
type MalformedTokenError struct {
	Token  string
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %q: %s", e.Token, e.Reason)
}

// Encode builds a token for an action and its positional parameters
func Encode(action Action, params ...string) string {
	if len(params) == 0 {
		return string(action)
	}
	return string(action) + Delimiter + strings.Join(params, Delimiter)
}

// Decode splits a token into its action and parameters. It fails with a
// MalformedTokenError when the token is empty, names no known action, or
// carries fewer parameters than the action requires.
func Decode(s string) (Action, []string, error) {
	if s == "" {
		return "", nil, &MalformedTokenError{Token: s, Reason: "empty"}
	}

	fields := strings.Split(s, Delimiter)
	action := Action(fields[0])
	params := fields[1:]

	min, ok := minParams[action]
	if !ok {
		return "", nil, &MalformedTokenError{Token: s, Reason: "unknown action"}
	}
	if len(params) < min {
		return "", nil, &MalformedTokenError{
			Token:  s,
			Reason: fmt.Sprintf("action %q requires %d parameters, got %d", action, min, len(params)),
		}
	}

	return action, params, nil
}
