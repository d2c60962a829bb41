package messages

import (
	"strings"
	"testing"
)

func TestFallbacksWithoutClient(t *testing.T) {
	svc := New(nil)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "created", got: svc.ScheduleCreated("GRA-1"), want: "GRA-1"},
		{name: "cancelled", got: svc.ScheduleCancelled(), want: "cancelled"},
		{name: "boarded", got: svc.Boarded(), want: "boarded"},
		{name: "board failed", got: svc.BoardFailed(), want: "Could not board"},
		{name: "left", got: svc.Left(), want: "left"},
		{name: "end denied", got: svc.EndDenied(), want: "not allowed"},
		{name: "ended", got: svc.ScheduleEnded(), want: "ended"},
		{name: "retry", got: svc.RetryStep(), want: "start over"},
		{name: "generic", got: svc.GenericError(), want: "went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == "" {
				t.Fatal("expected a non-empty message")
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Fatalf("expected message to contain %q, got %q", tt.want, tt.got)
			}
		})
	}
}
