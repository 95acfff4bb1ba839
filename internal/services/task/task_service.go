package task

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle    = errors.New("task title is required")
	ErrInvalidPriority = errors.New("task priority is invalid")
	ErrNoProjects      = errors.New("at least one project is required")
	ErrNoAssignees     = errors.New("at least one assignee is required")
	ErrInvalidStatus   = errors.New("assignment status is invalid")
)

// Store is the persistence surface TaskService depends on.
type Store interface {
	Create(ctx context.Context, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error)
	Update(ctx context.Context, id uuid.UUID, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TaskDetail, error)
	List(ctx context.Context) ([]*Task, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status Status) error
	EligibleUsers(ctx context.Context, projectIDs []uuid.UUID) ([]*EligibleUser, error)
	StatsByProject(ctx context.Context) ([]*ProjectStats, error)
}

type TaskService struct {
	repo Store
}

func NewTaskService(repo Store) *TaskService {
	return &TaskService{repo: repo}
}

// Create validates the payload and persists the task with its assignments.
func (s *TaskService) Create(ctx context.Context, req *SaveTaskRequest) (*TaskDetail, error) {
	users, err := normalize(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req, users)
}

// Update re-validates the payload and replaces the task's assignment set.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req *SaveTaskRequest) (*TaskDetail, error) {
	users, err := normalize(req)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req, users)
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*TaskDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context) ([]*Task, error) {
	return s.repo.List(ctx)
}

// ListForUser returns tasks that have at least one assignment for the user.
func (s *TaskService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Task, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SetAssignmentStatus moves a single assignment between Pending, Ongoing
// and Complete.
func (s *TaskService) SetAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	return s.repo.SetAssignmentStatus(ctx, assignmentID, status)
}

// EligibleUsers returns the assignee pool for the selected projects: the
// union of their members, deduplicated.
func (s *TaskService) EligibleUsers(ctx context.Context, projectIDs []uuid.UUID) ([]*EligibleUser, error) {
	if len(projectIDs) == 0 {
		return nil, ErrNoProjects
	}
	return s.repo.EligibleUsers(ctx, projectIDs)
}

func (s *TaskService) StatsByProject(ctx context.Context) ([]*ProjectStats, error) {
	return s.repo.StatsByProject(ctx)
}

// normalize validates the save payload and flattens it into the sequenced
// user list the repository inserts. Non-sequential payloads take UserIDs
// (deduplicated, sequence ignored); sequential payloads take
// UsersWithSequence and must carry a contiguous 1..N ordering.
func normalize(req *SaveTaskRequest) ([]SequencedUser, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrMissingTitle
	}
	if !Priority(req.Priority).IsValid() {
		return nil, ErrInvalidPriority
	}
	if len(req.ProjectIDs) == 0 {
		return nil, ErrNoProjects
	}

	if req.IsSequential {
		if len(req.UsersWithSequence) == 0 {
			return nil, ErrNoAssignees
		}
		if err := ValidateSequence(req.UsersWithSequence); err != nil {
			return nil, err
		}
		return req.UsersWithSequence, nil
	}

	if len(req.UserIDs) == 0 {
		return nil, ErrNoAssignees
	}
	list := NewAssigneeList(false, req.UserIDs)
	users := make([]SequencedUser, 0, list.Len())
	for _, id := range list.Members() {
		users = append(users, SequencedUser{UserID: id})
	}
	return users, nil
}
