package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrProjectAlreadyExists = errors.New("project already exists")

// ProjectService contains business logic for projects
type ProjectService struct {
	repo *ProjectRepo
}

// NewProjectService constructs a new ProjectService
func NewProjectService(repo *ProjectRepo) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create registers a new project ensuring name uniqueness
func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectAlreadyExists, req.Name)
	} else if !errors.Is(err, ErrProjectNotFound) {
		return nil, fmt.Errorf("failed to validate project name: %w", err)
	}

	return s.repo.Create(ctx, req)
}

// GetByID fetches a project by its identifier
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all projects ordered by creation time
func (s *ProjectService) List(ctx context.Context) ([]*Project, error) {
	return s.repo.List(ctx)
}

// Update modifies mutable project fields
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *UpdateProjectRequest) (*Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != existing.Name {
		if _, err := s.repo.GetByName(ctx, *req.Name); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrProjectAlreadyExists, *req.Name)
		} else if !errors.Is(err, ErrProjectNotFound) {
			return nil, fmt.Errorf("failed to validate project name: %w", err)
		}
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a project by ID
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Members lists the users assigned to a project
func (s *ProjectService) Members(ctx context.Context, projectID uuid.UUID) ([]*Member, error) {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, projectID)
}

// AddMember assigns a user to a project
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, projectID, userID)
}

// RemoveMember unassigns a user from a project
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, projectID, userID)
}
