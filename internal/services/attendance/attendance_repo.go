package attendance

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
	ErrAlreadyClockedIn = errors.New("an active session already exists")
	ErrNoActiveSession  = errors.New("no active session found")
)

type AttendanceRepo struct {
	db *sqlx.DB
}

func NewAttendanceRepo(db *sqlx.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Start opens a session with a single conditional insert. The WHERE NOT
// EXISTS guard plus the partial unique index on open rows means two
// concurrent starts can never both commit; the loser surfaces as
// ErrAlreadyClockedIn whether it lost to the guard or to the index.
func (r *AttendanceRepo) Start(ctx context.Context, userID uuid.UUID, loginTime time.Time) (*Record, error) {
	query := `
        INSERT INTO attendance (user_id, login_time)
        SELECT $1, $2
        WHERE NOT EXISTS (
            SELECT 1 FROM attendance WHERE user_id = $1 AND logout_time IS NULL
        )
        RETURNING id, user_id, login_time, logout_time, available_time, created_at
    `

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, userID, loginTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAlreadyClockedIn
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to start attendance: %w", err)
	}
	return &rec, nil
}

// End closes the most recent open session. When the caller-supplied duration
// is not positive the elapsed time is computed in the statement itself so
// the stored value never goes negative.
func (r *AttendanceRepo) End(ctx context.Context, userID uuid.UUID, logoutTime time.Time, workDuration int64) (*Record, error) {
	query := `
        UPDATE attendance
        SET logout_time = $2,
            available_time = CASE
                WHEN $3::bigint > 0 THEN $3::bigint
                ELSE GREATEST(0, EXTRACT(EPOCH FROM ($2::timestamptz - login_time))::bigint)
            END
        WHERE id = (
            SELECT id FROM attendance
            WHERE user_id = $1 AND logout_time IS NULL
            ORDER BY login_time DESC
            LIMIT 1
        )
        RETURNING id, user_id, login_time, logout_time, available_time, created_at
    `

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, userID, logoutTime, workDuration)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to end attendance: %w", err)
	}
	return &rec, nil
}

// Open returns the user's open session, if any.
func (r *AttendanceRepo) Open(ctx context.Context, userID uuid.UUID) (*Record, error) {
	query := `
        SELECT id, user_id, login_time, logout_time, available_time, created_at
        FROM attendance
        WHERE user_id = $1 AND logout_time IS NULL
        ORDER BY login_time DESC
        LIMIT 1
    `

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return &rec, nil
}

// History lists the user's sessions, newest first.
func (r *AttendanceRepo) History(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	query := `
        SELECT id, user_id, login_time, logout_time, available_time, created_at
        FROM attendance
        WHERE user_id = $1
        ORDER BY login_time DESC
    `

	var records []*Record
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
