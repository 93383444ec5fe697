package scorer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rnwolfe/triage/internal/task"
)

// Repo persists scored tasks.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a repo on an open, migrated database.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Insert stores a scored task and returns its row id.
func (r *Repo) Insert(ctx context.Context, t task.Scored, userAgent string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (description, deadline, difficulty, importance, estimated_time, priority_score, user_agent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Description, t.Deadline.String(), t.Difficulty, t.Importance, t.EstimatedTime, t.PriorityScore, userAgent,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}
	return res.LastInsertId()
}

// Top returns up to limit tasks, highest score first. Equal scores keep
// insertion order.
func (r *Repo) Top(ctx context.Context, limit int) ([]task.Scored, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT description, deadline, difficulty, importance, estimated_time, priority_score
		 FROM tasks ORDER BY priority_score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	out := []task.Scored{}
	for rows.Next() {
		var (
			t        task.Scored
			deadline string
		)
		if err := rows.Scan(&t.Description, &deadline, &t.Difficulty, &t.Importance, &t.EstimatedTime, &t.PriorityScore); err != nil {
			return nil, err
		}
		d, err := task.ParseDate(deadline)
		if err != nil {
			return nil, fmt.Errorf("stored deadline: %w", err)
		}
		t.Deadline = d
		out = append(out, t)
	}
	return out, rows.Err()
}

// Count returns the number of stored tasks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}
