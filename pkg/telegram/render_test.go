package telegram

import (
	"strings"
	"testing"

	"github.com/korjavin/flightroster/pkg/models"
)

func TestFormatScheduleCardEmptyRoster(t *testing.T) {
	s := &models.Schedule{
		Title:         "GRA-1",
		Aircraft:      models.AircraftCargo,
		Mission:       models.MissionPatrol,
		CreatedByName: "Pilot One",
		Passengers:    map[string]string{},
	}

	card := formatScheduleCard(s)
	for _, want := range []string{"GRA-1", "Cargo Plane", "Patrol", "Pilot One", "nobody aboard"} {
		if !strings.Contains(card, want) {
			t.Fatalf("expected card to contain %q, got:\n%s", want, card)
		}
	}
}

func TestFormatScheduleCardListsCrewSorted(t *testing.T) {
	s := &models.Schedule{
		Title:    "GRA-2",
		Aircraft: models.AircraftValkyre,
		Mission:  models.MissionAction,
		Passengers: map[string]string{
			"2": "Bravo",
			"1": "Alpha",
		},
	}

	card := formatScheduleCard(s)
	if !strings.Contains(card, "Crew (2):") {
		t.Fatalf("expected crew count, got:\n%s", card)
	}
	if strings.Index(card, "Alpha") > strings.Index(card, "Bravo") {
		t.Fatalf("expected crew sorted by name, got:\n%s", card)
	}
}

func TestFormatSummary(t *testing.T) {
	if got := formatSummary(nil); !strings.Contains(got, "No active schedules.") {
		t.Fatalf("expected empty summary, got:\n%s", got)
	}

	active := []*models.Schedule{
		{
			Title:      "GRA-1",
			Aircraft:   models.AircraftEC135,
			Mission:    models.MissionTraining,
			Passengers: map[string]string{"1": "Alpha"},
		},
	}
	got := formatSummary(active)
	for _, want := range []string{"Active schedules (1):", "GRA-1", "EC135", "Training", "1 aboard"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, got)
		}
	}
}
