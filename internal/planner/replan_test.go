package planner

import (
	"reflect"
	"testing"
	"time"
)

func testPlan(t *testing.T) Plan {
	t.Helper()
	tasks := []Task{
		{Name: "calculus", Difficulty: 3, Priority: StatusOngoing},   // score 4.0
		{Name: "biology", Difficulty: 2, Priority: StatusPending},    // score 1.5
		{Name: "literature", Difficulty: 1, Priority: StatusPending}, // score 1.0
	}
	plan, err := GeneratePlanAt(tasks, 2.0, 1.0, testNow)
	if err != nil {
		t.Fatalf("GeneratePlanAt: %v", err)
	}
	return plan
}

func TestAdjustForMissedUnknownTaskIsNoOp(t *testing.T) {
	plan := testPlan(t)
	got := AdjustForMissedAt(plan, "does not exist", testNow.Add(time.Hour))
	if !reflect.DeepEqual(got, plan) {
		t.Fatalf("adjusting an absent task changed the plan")
	}
}

func TestAdjustForMissedBoostsAndReorders(t *testing.T) {
	plan := testPlan(t)
	later := testNow.Add(26 * time.Hour)

	got := AdjustForMissedAt(plan, "biology", later)

	var boosted *ScheduleEntry
	for i := range got.Schedule {
		if got.Schedule[i].TaskName == "biology" {
			boosted = &got.Schedule[i]
		}
	}
	if boosted == nil {
		t.Fatalf("biology vanished from the schedule")
	}
	if boosted.PriorityScore != 1.5*1.5 {
		t.Fatalf("boosted score %v, want %v", boosted.PriorityScore, 1.5*1.5)
	}
	if boosted.PriorityStatus != StatusOngoing {
		t.Fatalf("boosted status %q, want Ongoing", boosted.PriorityStatus)
	}

	// 2.25 still trails calculus (4.0) but stays ahead of literature.
	names := []string{got.Schedule[0].TaskName, got.Schedule[1].TaskName, got.Schedule[2].TaskName}
	want := []string{"calculus", "biology", "literature"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("schedule order %v, want %v", names, want)
	}

	if got.AdjustmentReason != "Adjusted for missed task: biology" {
		t.Fatalf("adjustment reason %q", got.AdjustmentReason)
	}
	if !got.PlanGeneratedAt.Equal(later) {
		t.Fatalf("plan generated at %v, want %v", got.PlanGeneratedAt, later)
	}
}

func TestAdjustForMissedRepacksFromFront(t *testing.T) {
	plan := testPlan(t)
	later := testNow.Add(24 * time.Hour)
	got := AdjustForMissedAt(plan, "literature", later)

	day0 := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	wantDays := []int{0, 0, 1, 1, 2, 2}
	wantSlots := []int{1, 2, 1, 2, 1, 2}

	var sessions []Session
	for _, entry := range got.Schedule {
		sessions = append(sessions, entry.Sessions...)
	}
	if len(sessions) != 6 {
		t.Fatalf("expected 6 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		if want := day0.AddDate(0, 0, wantDays[i]); !s.Date.Equal(want) {
			t.Fatalf("session %d: date %v, want %v", i, s.Date, want)
		}
		if s.TimeSlot != wantSlots[i] {
			t.Fatalf("session %d: slot %d, want %d", i, s.TimeSlot, wantSlots[i])
		}
	}
}

func TestAdjustForMissedCompounds(t *testing.T) {
	plan := testPlan(t)
	original := plan.Schedule[1].PriorityScore // biology, 1.5

	once := AdjustForMissedAt(plan, "biology", testNow)
	twice := AdjustForMissedAt(once, "biology", testNow)

	var score float64
	for _, entry := range twice.Schedule {
		if entry.TaskName == "biology" {
			score = entry.PriorityScore
		}
	}
	if want := original * 1.5 * 1.5; score != want {
		t.Fatalf("score after two misses %v, want %v", score, want)
	}
}

func TestAdjustForMissedDoesNotMutateInput(t *testing.T) {
	plan := testPlan(t)
	before := plan.Schedule[0].Sessions[0].TimeSlot
	beforeScore := plan.Schedule[1].PriorityScore

	_ = AdjustForMissedAt(plan, "biology", testNow.Add(48*time.Hour))

	if plan.Schedule[1].PriorityScore != beforeScore {
		t.Fatalf("input plan score mutated")
	}
	if plan.Schedule[0].Sessions[0].TimeSlot != before {
		t.Fatalf("input plan sessions mutated")
	}
	if plan.AdjustmentReason != "" {
		t.Fatalf("input plan reason mutated")
	}
}
