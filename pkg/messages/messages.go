// Package messages produces the user-visible texts of the bot. Each text has
// a deterministic fallback; the OpenAI client only adds flavor when
// configured. Raw fault detail never reaches a user through this package.
package messages

import (
	"github.com/korjavin/flightroster/pkg/logger"
	"github.com/korjavin/flightroster/pkg/openai"
)

// Service provides message generation functionality
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service. The OpenAI client may be nil, in which
// case only the static fallbacks are used.
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New("messages"),
	}
}

// generate asks the LLM for a message, falling back to the static text
func (s *Service) generate(intent string, contextData map[string]interface{}, fallback string) string {
	if s.openaiClient == nil {
		return fallback
	}
	msg, err := s.openaiClient.GenerateChatMessage(intent, contextData)
	if err != nil {
		s.logger.Error("Failed to generate %s message: %v", intent, err)
		return fallback
	}
	return msg
}

// ScheduleCreated confirms a successful wizard completion
func (s *Service) ScheduleCreated(title string) string {
	return s.generate("schedule_created", map[string]interface{}{
		"title": title,
	}, "✅ Schedule "+title+" created!")
}

// ScheduleCancelled confirms an abandoned wizard
func (s *Service) ScheduleCancelled() string {
	return s.generate("schedule_cancelled", nil, "❌ Schedule creation cancelled.")
}

// Boarded confirms a successful board
func (s *Service) Boarded() string {
	return s.generate("boarded", nil, "✅ You boarded the schedule!")
}

// BoardFailed reports a rejected board
func (s *Service) BoardFailed() string {
	return "❌ Could not board the schedule."
}

// Left confirms a successful disembark
func (s *Service) Left() string {
	return s.generate("left", nil, "✅ You left the schedule!")
}

// LeaveFailed reports a rejected disembark
func (s *Service) LeaveFailed() string {
	return "❌ Could not leave the schedule."
}

// EndDenied reports a denied termination attempt
func (s *Service) EndDenied() string {
	return "❌ You are not allowed to end this schedule."
}

// EndFailed reports a failed termination
func (s *Service) EndFailed() string {
	return "❌ Could not end the schedule."
}

// ScheduleEnded confirms a successful termination
func (s *Service) ScheduleEnded() string {
	return s.generate("schedule_ended", nil, "✅ The schedule has been ended.")
}

// RetryStep asks the user to restart after a bad wizard step
func (s *Service) RetryStep() string {
	return "❌ That didn't work. Please start over."
}

// GenericError reports an unspecified processing failure
func (s *Service) GenericError() string {
	return "❌ Something went wrong while processing your request."
}
