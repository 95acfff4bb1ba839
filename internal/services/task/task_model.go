package task

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	return slices.Contains([]Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}, p)
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusOngoing  Status = "Ongoing"
	StatusComplete Status = "Complete"
)

func (s Status) IsValid() bool {
	return slices.Contains([]Status{StatusPending, StatusOngoing, StatusComplete}, s)
}

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	Remark      *string    `json:"remark,omitempty" db:"remark"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Assignment is one task×project×user link. Sequence is set only for
// sequential tasks and is always contiguous 1..N per task and project.
type Assignment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TaskID      uuid.UUID `json:"taskId" db:"task_id"`
	ProjectID   uuid.UUID `json:"projectId" db:"project_id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	Status      Status    `json:"status" db:"status"`
	Sequence    *int      `json:"sequence,omitempty" db:"sequence"`
	UserName    string    `json:"userName" db:"user_name"`
	ProjectName string    `json:"projectName" db:"project_name"`
}

// TaskDetail is a task expanded with its assignments
type TaskDetail struct {
	Task        *Task         `json:"task"`
	Assignments []*Assignment `json:"assignments"`
}

// SequencedUser is one {userId, sequence} pair of a sequential submission
type SequencedUser struct {
	UserID   uuid.UUID `json:"userId"`
	Sequence int       `json:"sequence"`
}

// EligibleUser is a member of the pool computed from the selected projects
type EligibleUser struct {
	UserID uuid.UUID `json:"userId" db:"user_id"`
	Name   string    `json:"name" db:"name"`
	Email  string    `json:"email" db:"email"`
}

// SaveTaskRequest captures payload for creating or updating a task
type SaveTaskRequest struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Priority          string          `json:"priority"`
	Deadline          *time.Time      `json:"deadline,omitempty"`
	Remark            string          `json:"remark"`
	ProjectIDs        []uuid.UUID     `json:"projectIds"`
	UserIDs           []uuid.UUID     `json:"userIds"`
	IsSequential      bool            `json:"isSequential"`
	UsersWithSequence []SequencedUser `json:"usersWithSequence,omitempty"`
}
