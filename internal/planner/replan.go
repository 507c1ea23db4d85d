package planner

import (
	"fmt"
	"sort"
	"time"
)

// AdjustForMissed rebuilds a plan after a missed study session. The
// missed task's score is boosted by half and its status set to Ongoing,
// then the whole schedule is re-ranked and every session re-packed from
// the front of the grid. A name the plan does not mention is a normal
// case, not an error: the plan comes back unchanged.
//
// Calling this twice for the same task compounds the boost (x1.5 each
// time) — repeated misses keep pushing the task forward.
func AdjustForMissed(plan Plan, taskName string) Plan {
	return AdjustForMissedAt(plan, taskName, time.Now().UTC())
}

// AdjustForMissedAt is AdjustForMissed with an explicit evaluation time.
// The input plan is never mutated.
func AdjustForMissedAt(plan Plan, taskName string, now time.Time) Plan {
	found := false
	schedule := make([]ScheduleEntry, len(plan.Schedule))
	for i, entry := range plan.Schedule {
		entry.Sessions = append([]Session(nil), entry.Sessions...)
		if entry.TaskName == taskName {
			entry.PriorityScore *= 1.5
			entry.PriorityStatus = StatusOngoing
			found = true
		}
		schedule[i] = entry
	}
	if !found {
		return plan
	}

	sessionsPerDay := 0
	if plan.SessionDuration > 0 {
		sessionsPerDay = int(plan.AvailableHoursPerDay / plan.SessionDuration)
	}
	if sessionsPerDay == 0 {
		// Nothing to repack into. GeneratePlan never produces such a
		// plan, so only hand-built plans can get here.
		return plan
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].PriorityScore > schedule[j].PriorityScore
	})

	day0 := midnightUTC(now)
	counter := 0
	for i := range schedule {
		for s := range schedule[i].Sessions {
			schedule[i].Sessions[s].Date = day0.AddDate(0, 0, counter/sessionsPerDay)
			schedule[i].Sessions[s].TimeSlot = counter%sessionsPerDay + 1
			counter++
		}
	}

	plan.Schedule = schedule
	plan.PlanGeneratedAt = now
	plan.AdjustmentReason = fmt.Sprintf("Adjusted for missed task: %s", taskName)
	return plan
}
