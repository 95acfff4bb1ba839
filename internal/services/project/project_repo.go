package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrProjectNotFound = errors.New("project not found")

const projectColumns = `id, name, client, url, db_url, factory, unit, created_at, updated_at`

// ProjectRepo handles database operations for projects
type ProjectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create creates a new project
func (r *ProjectRepo) Create(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	query := fmt.Sprintf(`
        INSERT INTO projects (name, client, url, db_url, factory, unit)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING %s
    `, projectColumns)

	var p Project
	err := r.db.GetContext(ctx, &p, query, req.Name, req.Client, req.URL, req.DBURL, req.Factory, req.Unit)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)

	var p Project
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// GetByName retrieves a project by name
func (r *ProjectRepo) GetByName(ctx context.Context, name string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE name = $1`, projectColumns)

	var p Project
	err := r.db.GetContext(ctx, &p, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// List retrieves all projects ordered by creation date
func (r *ProjectRepo) List(ctx context.Context) ([]*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY created_at DESC`, projectColumns)

	var projects []*Project
	err := r.db.SelectContext(ctx, &projects, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update updates project fields
func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, req *UpdateProjectRequest) (*Project, error) {
	setParts := []string{}
	args := []interface{}{}

	addSet := func(column string, value *string) {
		if value != nil {
			setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)+1))
			args = append(args, *value)
		}
	}

	addSet("name", req.Name)
	addSet("client", req.Client)
	addSet("url", req.URL)
	addSet("db_url", req.DBURL)
	addSet("factory", req.Factory)
	addSet("unit", req.Unit)

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
        UPDATE projects
        SET %s
        WHERE id = $%d
        RETURNING %s
    `, strings.Join(setParts, ", "), len(args), projectColumns)

	var p Project
	err := r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &p, nil
}

// Delete removes a project by ID
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Members lists the users assigned to a project
func (r *ProjectRepo) Members(ctx context.Context, projectID uuid.UUID) ([]*Member, error) {
	query := `
        SELECT u.id AS user_id, u.name, u.email, u.role
        FROM project_assignments pa
        JOIN users u ON u.id = pa.user_id
        WHERE pa.project_id = $1
        ORDER BY u.name
    `

	var members []*Member
	err := r.db.SelectContext(ctx, &members, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

// AddMember assigns a user to a project
func (r *ProjectRepo) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `
        INSERT INTO project_assignments (project_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (project_id, user_id) DO NOTHING
    `
	if _, err := r.db.ExecContext(ctx, query, projectID, userID); err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}
	return nil
}

// RemoveMember unassigns a user from a project
func (r *ProjectRepo) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `DELETE FROM project_assignments WHERE project_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, projectID, userID); err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}
	return nil
}
