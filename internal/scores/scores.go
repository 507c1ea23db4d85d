package scores

import (
	"context"
	"database/sql"
	"time"
)

// Log appends one computed score to the audit table. Scores are
// ephemeral, recomputed outputs: this log is best-effort and write-only,
// and callers must treat a returned error as a warning, never as a
// reason to abort the scoring pass.
func Log(ctx context.Context, dbx *sql.DB, taskName string, score float64, at time.Time) error {
	_, err := dbx.ExecContext(ctx, `
		INSERT INTO task_scores (task_name, score, calculated_at)
		VALUES ($1, $2, $3)
	`, taskName, score, at)
	return err
}
