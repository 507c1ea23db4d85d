package tasks

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/sannman/studyplan-backend/internal/planner"
)

var (
	ErrTaskExists   = errors.New("task already exists")
	ErrTaskNotFound = errors.New("task not found")
)

const taskColumns = `task_name, scale_difficulty, priority, created_at, due_at`

// CreateTask inserts a new task. Task names are unique: inserting a
// duplicate returns ErrTaskExists.
func CreateTask(ctx context.Context, dbx *sql.DB, t planner.Task) (planner.Task, error) {
	err := dbx.QueryRowContext(ctx, `
		INSERT INTO tasks (task_name, scale_difficulty, priority, due_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, t.Name, t.Difficulty, string(t.Priority), nullTime(t.DueAt)).Scan(&t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return planner.Task{}, ErrTaskExists
		}
		return planner.Task{}, err
	}
	return t, nil
}

// ListTasks returns every task in submission order. The planner's
// stable tie-break leans on this ordering.
func ListTasks(ctx context.Context, dbx *sql.DB) ([]planner.Task, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// TasksByStatus returns the tasks with the given status, in submission order.
func TasksByStatus(ctx context.Context, dbx *sql.DB, status planner.Status) ([]planner.Task, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE priority = $1
		ORDER BY id
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// OverdueTasks returns non-completed tasks whose due date has passed.
func OverdueTasks(ctx context.Context, dbx *sql.DB, now time.Time) ([]planner.Task, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE due_at IS NOT NULL
		  AND due_at < $1
		  AND priority <> 'Completed'
		ORDER BY id
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// UpdateStatus sets the status of a named task. Unknown names return
// ErrTaskNotFound, never a silent success.
func UpdateStatus(ctx context.Context, dbx *sql.DB, name string, status planner.Status) error {
	res, err := dbx.ExecContext(ctx, `
		UPDATE tasks
		SET priority = $1
		WHERE task_name = $2
	`, string(status), name)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a named task. Unknown names return ErrTaskNotFound.
func DeleteTask(ctx context.Context, dbx *sql.DB, name string) error {
	res, err := dbx.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE task_name = $1
	`, name)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]planner.Task, error) {
	var tasks []planner.Task
	for rows.Next() {
		var (
			t        planner.Task
			priority string
			due      sql.NullTime
		)
		if err := rows.Scan(&t.Name, &t.Difficulty, &priority, &t.CreatedAt, &due); err != nil {
			return nil, err
		}
		t.Priority = planner.Status(priority)
		if due.Valid {
			d := due.Time.UTC()
			t.DueAt = &d
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
