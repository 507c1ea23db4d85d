package planner

import (
	"errors"
	"sort"
	"time"
)

// ErrNoSessionsFit means the session duration exceeds the daily hour
// budget, so not a single session fits into a day.
var ErrNoSessionsFit = errors.New("session duration exceeds available hours per day")

// GeneratePlan builds a study schedule for the given tasks. Completed
// tasks are dropped, the rest are scored and ranked, and each task gets
// as many sessions as its difficulty value, packed greedily into a
// shared day/slot grid in score order.
func GeneratePlan(tasks []Task, hoursPerDay, sessionDuration float64) (Plan, error) {
	return GeneratePlanAt(tasks, hoursPerDay, sessionDuration, time.Now().UTC())
}

// GeneratePlanAt is GeneratePlan with an explicit evaluation time.
func GeneratePlanAt(tasks []Task, hoursPerDay, sessionDuration float64, now time.Time) (Plan, error) {
	sessionsPerDay := 0
	if sessionDuration > 0 {
		sessionsPerDay = int(hoursPerDay / sessionDuration)
	}
	if sessionsPerDay == 0 {
		return Plan{}, ErrNoSessionsFit
	}

	scored := make([]ScheduleEntry, 0, len(tasks))
	for _, t := range tasks {
		if t.Priority == StatusCompleted {
			continue
		}
		scored = append(scored, ScheduleEntry{
			TaskName:       t.Name,
			PriorityScore:  ScoreAt(t, now),
			Difficulty:     t.Difficulty,
			PriorityStatus: t.Priority,
			DueDate:        t.DueAt,
		})
	}

	// Stable: equal scores keep their submission order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	day0 := midnightUTC(now)
	counter := 0
	totalSessions := 0

	for i := range scored {
		// One session per difficulty point.
		n := scored[i].Difficulty
		sessions := make([]Session, 0, n)
		for s := 0; s < n; s++ {
			day := counter / sessionsPerDay
			sessions = append(sessions, Session{
				SessionNumber: s + 1,
				Date:          day0.AddDate(0, 0, day),
				TimeSlot:      counter%sessionsPerDay + 1,
				DurationHours: sessionDuration,
			})
			counter++
		}
		scored[i].Sessions = sessions
		totalSessions += n
	}

	return Plan{
		PlanGeneratedAt:      now,
		AvailableHoursPerDay: hoursPerDay,
		SessionDuration:      sessionDuration,
		TotalActiveTasks:     len(scored),
		TotalStudyHours:      float64(totalSessions) * sessionDuration,
		// Intentionally floor+1, not ceiling: the plan always runs
		// into at least the next day, even on exact division.
		EstimatedCompletionDays: totalSessions/sessionsPerDay + 1,
		Schedule:                scored,
	}, nil
}

// Upcoming returns the tasks due within the next daysAhead days,
// soonest first. Tasks without a due date never qualify.
func Upcoming(tasks []Task, daysAhead int) []Task {
	return UpcomingAt(tasks, daysAhead, time.Now().UTC())
}

// UpcomingAt is Upcoming with an explicit evaluation time.
func UpcomingAt(tasks []Task, daysAhead int, now time.Time) []Task {
	cutoff := now.AddDate(0, 0, daysAhead)

	var due []Task
	for _, t := range tasks {
		if t.DueAt == nil {
			continue
		}
		if t.DueAt.Before(now) || t.DueAt.After(cutoff) {
			continue
		}
		due = append(due, t)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt.Before(*due[j].DueAt)
	})
	return due
}

func midnightUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
