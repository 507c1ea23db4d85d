package plans

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/sannman/studyplan-backend/internal/config"
	"github.com/sannman/studyplan-backend/internal/planner"
	"github.com/sannman/studyplan-backend/internal/scores"
	"github.com/sannman/studyplan-backend/internal/tasks"
)

type scoredTask struct {
	TaskName   string         `json:"task_name"`
	Score      float64        `json:"score"`
	Difficulty int            `json:"difficulty"`
	Priority   planner.Status `json:"priority"`
	DueAt      *time.Time     `json:"due_at,omitempty"`
}

// ScoreTasksHandler scores every stored task and returns them ranked,
// highest first. Each score is appended to the audit log; a failed
// append is reported but never fails the request.
func ScoreTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := tasks.ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		now := time.Now().UTC()
		result := make([]scoredTask, 0, len(all))
		for _, t := range all {
			score := round2(planner.ScoreAt(t, now))
			result = append(result, scoredTask{
				TaskName:   t.Name,
				Score:      score,
				Difficulty: t.Difficulty,
				Priority:   t.Priority,
				DueAt:      t.DueAt,
			})

			if err := scores.Log(r.Context(), dbx, t.Name, score, now); err != nil {
				log.Printf("[WARN] score log failed for %q: %v", t.Name, err)
			}
		}

		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Score > result[j].Score
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"scores": result})
	}
}

// GeneratePlanHandler builds a study plan from all stored tasks. The
// request may override the configured hours/duration defaults.
func GeneratePlanHandler(dbx *sql.DB, defaults config.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hours, duration, msg := planParams(r, defaults)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		all, err := tasks.ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		plan, err := planner.GeneratePlan(all, hours, duration)
		if err != nil {
			if errors.Is(err, planner.ErrNoSessionsFit) {
				http.Error(w, "session duration exceeds available hours per day", http.StatusBadRequest)
				return
			}
			http.Error(w, "plan error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plan)
	}
}

// MarkMissedHandler records a missed study session: the stored task is
// flipped to Ongoing, then a fresh plan is generated and adjusted so the
// missed task moves toward the front of the grid.
func MarkMissedHandler(dbx *sql.DB, defaults config.Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskName string `json:"task_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TaskName == "" {
			http.Error(w, "task_name is required", http.StatusBadRequest)
			return
		}

		if err := tasks.UpdateStatus(r.Context(), dbx, body.TaskName, planner.StatusOngoing); err != nil {
			if errors.Is(err, tasks.ErrTaskNotFound) {
				http.Error(w, "task not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		all, err := tasks.ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		plan, err := planner.GeneratePlan(all, defaults.AvailableHoursPerDay, defaults.SessionDuration)
		if err != nil {
			http.Error(w, "plan error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		adjusted := planner.AdjustForMissed(plan, body.TaskName)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "adjusted",
			"missed_task":  body.TaskName,
			"updated_plan": adjusted,
		})
	}
}

// planParams merges the optional request body with configured defaults.
func planParams(r *http.Request, defaults config.Planner) (hours, duration float64, msg string) {
	hours = defaults.AvailableHoursPerDay
	duration = defaults.SessionDuration

	if r.Body == nil {
		return hours, duration, ""
	}

	var body struct {
		AvailableHoursPerDay *float64 `json:"available_hours_per_day"`
		StudySessionDuration *float64 `json:"study_session_duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return 0, 0, "invalid json"
	}

	if body.AvailableHoursPerDay != nil {
		hours = *body.AvailableHoursPerDay
	}
	if body.StudySessionDuration != nil {
		duration = *body.StudySessionDuration
	}
	if hours <= 0 {
		return 0, 0, "available_hours_per_day must be positive"
	}
	if duration <= 0 {
		return 0, 0, "study_session_duration must be positive"
	}
	return hours, duration, ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
