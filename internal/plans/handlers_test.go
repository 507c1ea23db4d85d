package plans

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sannman/studyplan-backend/internal/config"
)

var testDefaults = config.Planner{AvailableHoursPerDay: 4.0, SessionDuration: 1.0}

func TestPlanParamsEmptyBodyUsesDefaults(t *testing.T) {
	r := httptest.NewRequest("POST", "/plan", nil)
	hours, duration, msg := planParams(r, testDefaults)
	if msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
	if hours != 4.0 || duration != 1.0 {
		t.Fatalf("got %v/%v, want defaults 4.0/1.0", hours, duration)
	}
}

func TestPlanParamsOverrides(t *testing.T) {
	r := httptest.NewRequest("POST", "/plan",
		strings.NewReader(`{"available_hours_per_day": 6, "study_session_duration": 2}`))
	hours, duration, msg := planParams(r, testDefaults)
	if msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
	if hours != 6.0 || duration != 2.0 {
		t.Fatalf("got %v/%v, want 6.0/2.0", hours, duration)
	}
}

func TestPlanParamsPartialOverride(t *testing.T) {
	r := httptest.NewRequest("POST", "/plan",
		strings.NewReader(`{"study_session_duration": 0.5}`))
	hours, duration, msg := planParams(r, testDefaults)
	if msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
	if hours != 4.0 || duration != 0.5 {
		t.Fatalf("got %v/%v, want 4.0/0.5", hours, duration)
	}
}

func TestPlanParamsRejectsNonPositive(t *testing.T) {
	cases := []string{
		`{"available_hours_per_day": 0}`,
		`{"available_hours_per_day": -1}`,
		`{"study_session_duration": 0}`,
		`{"study_session_duration": -0.5}`,
	}
	for _, body := range cases {
		r := httptest.NewRequest("POST", "/plan", strings.NewReader(body))
		if _, _, msg := planParams(r, testDefaults); msg == "" {
			t.Fatalf("body %s: expected rejection", body)
		}
	}
}

func TestPlanParamsRejectsBadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/plan", strings.NewReader(`{not json`))
	if _, _, msg := planParams(r, testDefaults); msg != "invalid json" {
		t.Fatalf("expected invalid json rejection, got %q", msg)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(7.0); got != 7.0 {
		t.Fatalf("round2(7.0) = %v", got)
	}
	if got := round2(2.0 * 2.0 * 1.5); got != 6.0 {
		t.Fatalf("round2(6.0) = %v", got)
	}
	if got := round2(1.23456); got != 1.23 {
		t.Fatalf("round2(1.23456) = %v", got)
	}
}
