package planner

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

// ValidStatus reports whether s is one of the three known labels.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Task is a single study task as the planner sees it. Name is unique
// within one planning call. A nil DueAt means no deadline pressure.
type Task struct {
	Name       string     `json:"task_name"`
	Difficulty int        `json:"scale_difficulty"`
	Priority   Status     `json:"priority"`
	CreatedAt  time.Time  `json:"created_at"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

// Session is one fixed-duration study block on a specific day.
// SessionNumber is 1-indexed within the task, TimeSlot within the day.
type Session struct {
	SessionNumber int       `json:"session_number"`
	Date          time.Time `json:"date"`
	TimeSlot      int       `json:"time_slot"`
	DurationHours float64   `json:"duration_hours"`
}

// ScheduleEntry is one task's slice of the plan.
type ScheduleEntry struct {
	TaskName       string     `json:"task_name"`
	PriorityScore  float64    `json:"priority_score"`
	Difficulty     int        `json:"difficulty"`
	PriorityStatus Status     `json:"priority_status"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Sessions       []Session  `json:"sessions"`
}

// Plan is a generated study schedule. It is a pure value: no identity,
// no persistence, regenerated on demand.
type Plan struct {
	PlanGeneratedAt         time.Time       `json:"plan_generated_at"`
	AvailableHoursPerDay    float64         `json:"available_hours_per_day"`
	SessionDuration         float64         `json:"session_duration"`
	TotalActiveTasks        int             `json:"total_active_tasks"`
	TotalStudyHours         float64         `json:"total_study_hours"`
	EstimatedCompletionDays int             `json:"estimated_completion_days"`
	AdjustmentReason        string          `json:"adjustment_reason,omitempty"`
	Schedule                []ScheduleEntry `json:"schedule"`
}
