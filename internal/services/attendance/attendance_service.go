package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingFields = errors.New("userId and time are required")

// Store is the persistence surface for attendance sessions. *AttendanceRepo
// satisfies it; tests swap in a fake.
type Store interface {
	Start(ctx context.Context, userID uuid.UUID, loginTime time.Time) (*Record, error)
	End(ctx context.Context, userID uuid.UUID, logoutTime time.Time, workDuration int64) (*Record, error)
	Open(ctx context.Context, userID uuid.UUID) (*Record, error)
	History(ctx context.Context, userID uuid.UUID) ([]*Record, error)
}

type AttendanceService struct {
	repo Store
}

func NewAttendanceService(repo Store) *AttendanceService {
	return &AttendanceService{repo: repo}
}

// Start opens a work session. Starting while one is already open is a
// conflict, never a silent merge.
func (s *AttendanceService) Start(ctx context.Context, req *StartRequest) (*Record, error) {
	if req.UserID == uuid.Nil || req.LoginTime.IsZero() {
		return nil, ErrMissingFields
	}
	return s.repo.Start(ctx, req.UserID, req.LoginTime)
}

// End closes the open session. Ending while idle fails rather than no-ops.
func (s *AttendanceService) End(ctx context.Context, req *EndRequest) (*Record, error) {
	if req.UserID == uuid.Nil || req.LogoutTime.IsZero() {
		return nil, ErrMissingFields
	}
	return s.repo.End(ctx, req.UserID, req.LogoutTime, req.WorkDuration)
}

func (s *AttendanceService) Open(ctx context.Context, userID uuid.UUID) (*Record, error) {
	return s.repo.Open(ctx, userID)
}

func (s *AttendanceService) History(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	return s.repo.History(ctx, userID)
}
