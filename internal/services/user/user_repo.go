package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already registered")
	ErrUnknownRole       = errors.New("unknown role")
)

const userColumns = `id, name, email, phone, password_hash, pin_hash, role, last_login, recent_login, created_at, updated_at`

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	var users []*User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepo) Create(ctx context.Context, name, email, phone, passwordHash string, role Role) (*User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (name, email, phone, password_hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s
    `, userColumns)

	var u User
	err := r.db.GetContext(ctx, &u, query, name, email, phone, passwordHash, role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailAlreadyTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// Update replaces the mutable profile fields. The pin hash is only written
// when a new one is supplied.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, name, email, phone, passwordHash string, role Role, pinHash *string) (*User, error) {
	query := fmt.Sprintf(`
        UPDATE users
        SET name = $1, email = $2, phone = $3, password_hash = $4, role = $5,
            pin_hash = COALESCE($6, pin_hash), updated_at = NOW()
        WHERE id = $7
        RETURNING %s
    `, userColumns)

	var u User
	err := r.db.GetContext(ctx, &u, query, name, email, phone, passwordHash, role, pinHash, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &u, nil
}

// RotateLoginTimes moves recent_login into last_login and stamps a fresh
// recent_login for a successful authentication.
func (r *UserRepo) RotateLoginTimes(ctx context.Context, id uuid.UUID, now time.Time) (*User, error) {
	query := fmt.Sprintf(`
        UPDATE users
        SET last_login = recent_login, recent_login = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING %s
    `, userColumns)

	var u User
	err := r.db.GetContext(ctx, &u, query, now, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to rotate login times: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AssignToAllProjects links a freshly registered user to every existing
// project, matching the onboarding behavior of the portal.
func (r *UserRepo) AssignToAllProjects(ctx context.Context, userID uuid.UUID) error {
	query := `
        INSERT INTO project_assignments (project_id, user_id)
        SELECT id, $1 FROM projects
        ON CONFLICT (project_id, user_id) DO NOTHING
    `
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to assign user to projects: %w", err)
	}
	return nil
}
