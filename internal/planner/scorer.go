package planner

import "time"

// Difficulty weights on the 1-5 scale. Anything outside the scale
// falls back to 1.0.
var difficultyWeights = map[int]float64{
	1: 1.0,
	2: 1.5,
	3: 2.0,
	4: 2.5,
	5: 3.0,
}

// Completed tasks score 0 so they never get scheduled. An unknown
// label falls back to 1.0.
var priorityWeights = map[Status]float64{
	StatusPending:   1.0,
	StatusOngoing:   2.0,
	StatusCompleted: 0.0,
}

// DifficultyWeight returns the scoring weight for a 1-5 difficulty.
func DifficultyWeight(difficulty int) float64 {
	if w, ok := difficultyWeights[difficulty]; ok {
		return w
	}
	return 1.0
}

// PriorityWeight returns the scoring weight for a status label.
func PriorityWeight(status Status) float64 {
	if w, ok := priorityWeights[status]; ok {
		return w
	}
	return 1.0
}

// TimeWeight returns the urgency multiplier for a due date relative to
// now. Urgency steps up as the deadline approaches; boundaries belong
// to the more urgent bucket.
func TimeWeight(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 1.0
	}

	days := due.Sub(now).Hours() / 24

	switch {
	case days <= 0:
		return 5.0 // overdue
	case days <= 1:
		return 4.5
	case days <= 3:
		return 3.5
	case days <= 7:
		return 2.5
	case days <= 14:
		return 1.5
	default:
		return 1.0
	}
}

// Score computes the priority score for a task: the product of its
// difficulty, status and urgency weights. Higher means schedule sooner.
func Score(t Task) float64 {
	return ScoreAt(t, time.Now().UTC())
}

// ScoreAt is Score with an explicit evaluation time. The same now must
// be used for every task of one scoring pass so that urgency buckets
// stay consistent across the set.
func ScoreAt(t Task, now time.Time) float64 {
	return DifficultyWeight(t.Difficulty) * PriorityWeight(t.Priority) * TimeWeight(t.DueAt, now)
}
