package schedule

import (
	"fmt"
	"sync"
	"testing"

	"github.com/korjavin/flightroster/pkg/models"
	"github.com/korjavin/flightroster/pkg/storage"
)

type fakePublisher struct {
	mu               sync.Mutex
	refreshed        []string
	removed          []string
	summaryRefreshes int
}

func (p *fakePublisher) RefreshDisplay(s *models.Schedule) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshed = append(p.refreshed, s.ID)
	return nil
}

func (p *fakePublisher) RemoveDisplay(s *models.Schedule) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed = append(p.removed, s.ID)
	return nil
}

func (p *fakePublisher) RefreshSummary(active []*models.Schedule) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summaryRefreshes++
	return nil
}

func newTestService(t *testing.T) (*Service, *fakePublisher) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	pub := &fakePublisher{}
	return New(store, pub), pub
}

func createActive(t *testing.T, svc *Service) *models.Schedule {
	t.Helper()
	sched, err := svc.Create(svc.GenerateTitle(), models.AircraftCargo, models.MissionPatrol, "creator-1", "Creator")
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if err := svc.RegisterDisplay(sched.ID, "chan-1", "msg-1"); err != nil {
		t.Fatalf("register display: %v", err)
	}
	return sched
}

func TestCreateStartsWithEmptyRoster(t *testing.T) {
	svc, _ := newTestService(t)

	sched, err := svc.Create("GRA-1", models.AircraftValkyre, models.MissionAction, "creator-1", "Creator")
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if sched.Status != models.StatusCreated {
		t.Fatalf("expected status created, got %q", sched.Status)
	}
	if len(sched.Passengers) != 0 {
		t.Fatalf("expected empty roster, got %d members", len(sched.Passengers))
	}
	if sched.ID == "" {
		t.Fatal("expected a schedule id")
	}
}

func TestGenerateTitleCountsActiveSchedules(t *testing.T) {
	svc, _ := newTestService(t)

	if title := svc.GenerateTitle(); title != "GRA-1" {
		t.Fatalf("expected GRA-1 with no active schedules, got %q", title)
	}

	createActive(t, svc)

	if title := svc.GenerateTitle(); title != "GRA-2" {
		t.Fatalf("expected GRA-2 with one active schedule, got %q", title)
	}
}

func TestGenerateTitleIgnoresEndedSchedules(t *testing.T) {
	svc, _ := newTestService(t)

	sched := createActive(t, svc)
	if !svc.End(sched.ID) {
		t.Fatal("expected end to succeed")
	}

	if title := svc.GenerateTitle(); title != "GRA-1" {
		t.Fatalf("expected GRA-1 after ending, got %q", title)
	}
}

func TestRegisterDisplayActivates(t *testing.T) {
	svc, _ := newTestService(t)

	sched := createActive(t, svc)

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if loaded.Status != models.StatusActive {
		t.Fatalf("expected status active, got %q", loaded.Status)
	}
	if loaded.Display == nil || loaded.Display.ChannelRef != "chan-1" || loaded.Display.MessageRef != "msg-1" {
		t.Fatalf("unexpected display ref: %+v", loaded.Display)
	}
}

func TestAddPassengerIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	if !svc.AddPassenger(sched.ID, "user-1", "Alice") {
		t.Fatal("expected first board to succeed")
	}
	if svc.AddPassenger(sched.ID, "user-1", "Alice") {
		t.Fatal("expected second board to return false")
	}

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if len(loaded.Passengers) != 1 {
		t.Fatalf("expected roster size 1, got %d", len(loaded.Passengers))
	}
}

func TestAddPassengerRejectedWhenNotActive(t *testing.T) {
	svc, _ := newTestService(t)

	sched, err := svc.Create("GRA-1", models.AircraftCargo, models.MissionPatrol, "creator-1", "Creator")
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	// Still created: no public display yet.
	if svc.AddPassenger(sched.ID, "user-1", "Alice") {
		t.Fatal("expected board on created schedule to return false")
	}

	if svc.AddPassenger("no-such-schedule", "user-1", "Alice") {
		t.Fatal("expected board on missing schedule to return false")
	}
}

func TestAddPassengerRejectedAfterEnd(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	if !svc.End(sched.ID) {
		t.Fatal("expected end to succeed")
	}
	if svc.AddPassenger(sched.ID, "user-1", "Alice") {
		t.Fatal("expected board on ended schedule to return false")
	}
}

func TestRemovePassengerNonMember(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	if !svc.AddPassenger(sched.ID, "user-1", "Alice") {
		t.Fatal("expected board to succeed")
	}
	if svc.RemovePassenger(sched.ID, "user-2") {
		t.Fatal("expected remove of non-member to return false")
	}

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if len(loaded.Passengers) != 1 {
		t.Fatalf("expected roster size 1, got %d", len(loaded.Passengers))
	}

	if !svc.RemovePassenger(sched.ID, "user-1") {
		t.Fatal("expected remove of member to succeed")
	}
	if svc.RemovePassenger("no-such-schedule", "user-1") {
		t.Fatal("expected remove on missing schedule to return false")
	}
}

func TestEndIdempotentInEffect(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	if !svc.End(sched.ID) {
		t.Fatal("expected first end to return true")
	}
	if svc.End(sched.ID) {
		t.Fatal("expected second end to return false")
	}

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if loaded.Status != models.StatusEnded {
		t.Fatalf("expected status ended, got %q", loaded.Status)
	}

	if svc.End("no-such-schedule") {
		t.Fatal("expected end on missing schedule to return false")
	}
}

func TestCanEndCreatorOnly(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	if !svc.CanEnd(sched.ID, "creator-1") {
		t.Fatal("expected creator to be allowed to end")
	}
	if svc.CanEnd(sched.ID, "someone-else") {
		t.Fatal("expected non-creator to be denied")
	}
	if svc.CanEnd("no-such-schedule", "creator-1") {
		t.Fatal("expected missing schedule to be denied")
	}
}

func TestConcurrentBoardsNoLostUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	sched := createActive(t, svc)

	const crew = 20
	var wg sync.WaitGroup
	for i := 0; i < crew; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			if !svc.AddPassenger(sched.ID, userID, fmt.Sprintf("Crew %d", i)) {
				t.Errorf("expected board of %s to succeed", userID)
			}
		}(i)
	}
	wg.Wait()

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if len(loaded.Passengers) != crew {
		t.Fatalf("expected roster size %d, got %d", crew, len(loaded.Passengers))
	}
}

func TestRemoveDisplayClearsReference(t *testing.T) {
	svc, pub := newTestService(t)
	sched := createActive(t, svc)

	if err := svc.RemoveDisplay(sched.ID); err != nil {
		t.Fatalf("remove display: %v", err)
	}
	if len(pub.removed) != 1 || pub.removed[0] != sched.ID {
		t.Fatalf("expected publisher to remove display once, got %v", pub.removed)
	}

	loaded, err := svc.Get(sched.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if loaded.Display != nil {
		t.Fatalf("expected display cleared, got %+v", loaded.Display)
	}

	// Second removal is a no-op, not an error.
	if err := svc.RemoveDisplay(sched.ID); err != nil {
		t.Fatalf("second remove display: %v", err)
	}
	if len(pub.removed) != 1 {
		t.Fatalf("expected no second publisher call, got %v", pub.removed)
	}
}

func TestRefreshSummaryPassesActiveSchedules(t *testing.T) {
	svc, pub := newTestService(t)
	createActive(t, svc)

	if err := svc.RefreshSummary(); err != nil {
		t.Fatalf("refresh summary: %v", err)
	}
	if pub.summaryRefreshes != 1 {
		t.Fatalf("expected one summary refresh, got %d", pub.summaryRefreshes)
	}
}
