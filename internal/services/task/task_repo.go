package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssignmentNotFound = errors.New("task assignment not found")
)

const taskColumns = `id, title, description, priority, deadline, remark, created_at, updated_at`

type TaskRepo struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// assignmentRow is the flat insert form: one row per project×user pair.
type assignmentRow struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Sequence  *int
}

func buildAssignmentRows(projectIDs []uuid.UUID, users []SequencedUser, sequential bool) []assignmentRow {
	rows := make([]assignmentRow, 0, len(projectIDs)*len(users))
	for _, pid := range projectIDs {
		for _, u := range users {
			row := assignmentRow{ProjectID: pid, UserID: u.UserID}
			if sequential {
				seq := u.Sequence
				row.Sequence = &seq
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Create inserts the task and all of its assignments in one transaction.
func (r *TaskRepo) Create(ctx context.Context, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
        INSERT INTO tasks (title, description, priority, deadline, remark)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s
    `, taskColumns)

	var t Task
	if err := tx.GetContext(ctx, &t, query, req.Title, req.Description, req.Priority, req.Deadline, req.Remark); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := insertAssignments(ctx, tx, t.ID, buildAssignmentRows(req.ProjectIDs, users, req.IsSequential)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit task: %w", err)
	}

	return r.GetByID(ctx, t.ID)
}

// Update rewrites the task fields and replaces the assignment set.
// Last-writer-wins; there is no optimistic concurrency check.
func (r *TaskRepo) Update(ctx context.Context, id uuid.UUID, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
        UPDATE tasks
        SET title = $1, description = $2, priority = $3, deadline = $4, remark = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING %s
    `, taskColumns)

	var t Task
	if err := tx.GetContext(ctx, &t, query, req.Title, req.Description, req.Priority, req.Deadline, req.Remark, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear task assignments: %w", err)
	}

	if err := insertAssignments(ctx, tx, id, buildAssignmentRows(req.ProjectIDs, users, req.IsSequential)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit task: %w", err)
	}

	return r.GetByID(ctx, id)
}

func insertAssignments(ctx context.Context, tx *sqlx.Tx, taskID uuid.UUID, rows []assignmentRow) error {
	query := `
        INSERT INTO task_assignments (task_id, project_id, user_id, sequence)
        VALUES ($1, $2, $3, $4)
    `
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query, taskID, row.ProjectID, row.UserID, row.Sequence); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("assignment references a missing project or user: %w", err)
			}
			return fmt.Errorf("failed to insert task assignment: %w", err)
		}
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*TaskDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)

	var t Task
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	assignments, err := r.assignments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TaskDetail{Task: &t, Assignments: assignments}, nil
}

func (r *TaskRepo) assignments(ctx context.Context, taskID uuid.UUID) ([]*Assignment, error) {
	query := `
        SELECT ta.id, ta.task_id, ta.project_id, ta.user_id, ta.status, ta.sequence,
               u.name AS user_name, p.name AS project_name
        FROM task_assignments ta
        JOIN users u ON u.id = ta.user_id
        JOIN projects p ON p.id = ta.project_id
        WHERE ta.task_id = $1
        ORDER BY ta.sequence NULLS LAST, u.name
    `

	var assignments []*Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, taskID); err != nil {
		return nil, fmt.Errorf("failed to list task assignments: %w", err)
	}
	return assignments, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY created_at DESC`, taskColumns)

	var tasks []*Task
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListForUser returns tasks the user is assigned to, for the SE dashboard.
func (r *TaskRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Task, error) {
	query := `
        SELECT DISTINCT t.id, t.title, t.description, t.priority, t.deadline, t.remark, t.created_at, t.updated_at
        FROM tasks t
        JOIN task_assignments ta ON ta.task_id = t.id
        WHERE ta.user_id = $1
        ORDER BY t.created_at DESC
    `

	var tasks []*Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tasks for user: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetAssignmentStatus updates the status of one assignment row.
func (r *TaskRepo) SetAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE task_assignments SET status = $1, updated_at = NOW() WHERE id = $2
    `, status, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// EligibleUsers is the union of users assigned to the given projects.
func (r *TaskRepo) EligibleUsers(ctx context.Context, projectIDs []uuid.UUID) ([]*EligibleUser, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
        SELECT DISTINCT u.id AS user_id, u.name, u.email
        FROM project_assignments pa
        JOIN users u ON u.id = pa.user_id
        WHERE pa.project_id IN (?)
        ORDER BY u.name
    `, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build eligible users query: %w", err)
	}

	var users []*EligibleUser
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list eligible users: %w", err)
	}
	return users, nil
}

// ProjectStats is the per-project task distribution consumed by analytics.
type ProjectStats struct {
	Name      string `json:"name" db:"name"`
	TaskCount int    `json:"taskCount" db:"task_count"`
	Completed int    `json:"completed" db:"completed"`
	Pending   int    `json:"pending" db:"pending"`
	Ongoing   int    `json:"ongoing" db:"ongoing"`
}

// StatsByProject aggregates assignment statuses per project.
func (r *TaskRepo) StatsByProject(ctx context.Context) ([]*ProjectStats, error) {
	query := `
        SELECT p.name,
               COUNT(ta.id) AS task_count,
               COUNT(ta.id) FILTER (WHERE ta.status = 'Complete') AS completed,
               COUNT(ta.id) FILTER (WHERE ta.status = 'Pending') AS pending,
               COUNT(ta.id) FILTER (WHERE ta.status = 'Ongoing') AS ongoing
        FROM projects p
        LEFT JOIN task_assignments ta ON ta.project_id = p.id
        GROUP BY p.name
        ORDER BY p.name
    `

	var stats []*ProjectStats
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate project stats: %w", err)
	}
	return stats, nil
}
