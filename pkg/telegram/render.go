package telegram

import (
	"fmt"
	"strings"

	"github.com/korjavin/flightroster/pkg/models"
)

// formatScheduleCard renders the public view of one schedule
func formatScheduleCard(s *models.Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Schedule %s\n\n", s.Mission.Emblem(), s.Title)
	fmt.Fprintf(&b, "Aircraft: %s\n", s.Aircraft.DisplayName())
	fmt.Fprintf(&b, "Mission: %s\n", s.Mission.DisplayName())
	fmt.Fprintf(&b, "Dispatcher: %s\n", s.CreatedByName)

	names := s.PassengerNames()
	if len(names) == 0 {
		b.WriteString("\nCrew: nobody aboard yet")
		return b.String()
	}

	fmt.Fprintf(&b, "\nCrew (%d):\n", len(names))
	for _, name := range names {
		fmt.Fprintf(&b, "• %s\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatSummary renders the overview of currently active schedules
func formatSummary(active []*models.Schedule) string {
	var b strings.Builder
	b.WriteString("✈️ Flight schedules\n\n")

	if len(active) == 0 {
		b.WriteString("No active schedules.")
		return b.String()
	}

	fmt.Fprintf(&b, "Active schedules (%d):\n", len(active))
	for _, s := range active {
		fmt.Fprintf(&b, "• %s — %s, %s (%d aboard)\n", s.Title, s.Aircraft.DisplayName(), s.Mission.DisplayName(), len(s.Passengers))
	}
	return strings.TrimRight(b.String(), "\n")
}
