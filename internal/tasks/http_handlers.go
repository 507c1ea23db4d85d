package tasks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sannman/studyplan-backend/internal/planner"
)

type taskRequest struct {
	TaskName        string `json:"task_name"`
	ScaleDifficulty int    `json:"scale_difficulty"`
	Priority        string `json:"priority"`
	DueAt           string `json:"due_at"`
}

// decodeTask turns a create request into a planner.Task, enforcing the
// boundary validation the core assumes: name present, difficulty in
// [1,5], a known status label, RFC 3339 due date. A non-empty second
// return value is the client-facing rejection message.
func decodeTask(req taskRequest) (planner.Task, string) {
	name := strings.TrimSpace(req.TaskName)
	if name == "" {
		return planner.Task{}, "task_name is required"
	}
	if req.ScaleDifficulty < 1 || req.ScaleDifficulty > 5 {
		return planner.Task{}, "scale_difficulty must be between 1 and 5"
	}

	status := planner.StatusPending
	if req.Priority != "" {
		status = planner.Status(req.Priority)
		if !planner.ValidStatus(status) {
			return planner.Task{}, "priority must be one of: Pending, Ongoing, Completed"
		}
	}

	var due *time.Time
	if req.DueAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			return planner.Task{}, "due_at must be an RFC 3339 timestamp"
		}
		utc := parsed.UTC()
		due = &utc
	}

	return planner.Task{
		Name:       name,
		Difficulty: req.ScaleDifficulty,
		Priority:   status,
		DueAt:      due,
	}, ""
}

// -------------------------------
// HANDLERS
// -------------------------------

func CreateTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		task, msg := decodeTask(req)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		created, err := CreateTask(r.Context(), dbx, task)
		if err != nil {
			if errors.Is(err, ErrTaskExists) {
				http.Error(w, "task already exists", http.StatusConflict)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}
}

func GetTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if raw := r.URL.Query().Get("status"); raw != "" {
			status := planner.Status(raw)
			if !planner.ValidStatus(status) {
				http.Error(w, "invalid status, must be one of: Pending, Ongoing, Completed", http.StatusBadRequest)
				return
			}
			filtered, err := TasksByStatus(r.Context(), dbx, status)
			if err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": status,
				"count":  len(filtered),
				"tasks":  filtered,
			})
			return
		}

		tasks, err := ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if tasks == nil {
			tasks = []planner.Task{}
		}
		_ = json.NewEncoder(w).Encode(tasks)
	}
}

func UpdateStatusHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskName  string `json:"task_name"`
			NewStatus string `json:"new_status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TaskName == "" {
			http.Error(w, "task_name is required", http.StatusBadRequest)
			return
		}
		status := planner.Status(body.NewStatus)
		if !planner.ValidStatus(status) {
			http.Error(w, "new_status must be one of: Pending, Ongoing, Completed", http.StatusBadRequest)
			return
		}

		if err := UpdateStatus(r.Context(), dbx, body.TaskName, status); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				http.Error(w, "task not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     "updated",
			"task_name":  body.TaskName,
			"new_status": status,
		})
	}
}

func DeleteTaskHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			http.Error(w, "name query parameter is required", http.StatusBadRequest)
			return
		}

		if err := DeleteTask(r.Context(), dbx, name); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				http.Error(w, "task not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "deleted",
			"task_name": name,
		})
	}
}

func UpcomingTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daysAhead := 7
		if raw := r.URL.Query().Get("days_ahead"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "days_ahead must be a non-negative integer", http.StatusBadRequest)
				return
			}
			daysAhead = n
		}

		tasks, err := ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		upcoming := planner.Upcoming(tasks, daysAhead)
		if upcoming == nil {
			upcoming = []planner.Task{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"days_ahead": daysAhead,
			"count":      len(upcoming),
			"tasks":      upcoming,
		})
	}
}

func OverdueTasksHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overdue, err := OverdueTasks(r.Context(), dbx, time.Now().UTC())
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if overdue == nil {
			overdue = []planner.Task{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": len(overdue),
			"tasks": overdue,
		})
	}
}

func StatsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := ListTasks(r.Context(), dbx)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		overdue, err := OverdueTasks(r.Context(), dbx, time.Now().UTC())
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var pending, ongoing, completed int
		difficultySum := 0
		for _, t := range tasks {
			switch t.Priority {
			case planner.StatusPending:
				pending++
			case planner.StatusOngoing:
				ongoing++
			case planner.StatusCompleted:
				completed++
			}
			difficultySum += t.Difficulty
		}

		completionRate := 0.0
		avgDifficulty := 0.0
		if len(tasks) > 0 {
			completionRate = round1(float64(completed) / float64(len(tasks)) * 100)
			avgDifficulty = round1(float64(difficultySum) / float64(len(tasks)))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_tasks":        len(tasks),
			"pending":            pending,
			"ongoing":            ongoing,
			"completed":          completed,
			"overdue":            len(overdue),
			"completion_rate":    completionRate,
			"average_difficulty": avgDifficulty,
		})
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
