package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is a client engagement users and tasks are assigned to
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Client    *string   `json:"client,omitempty" db:"client"`
	URL       *string   `json:"url,omitempty" db:"url"`
	DBURL     *string   `json:"dbUrl,omitempty" db:"db_url"`
	Factory   *string   `json:"factory,omitempty" db:"factory"`
	Unit      *string   `json:"unit,omitempty" db:"unit"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Member is a user assigned to a project
type Member struct {
	UserID uuid.UUID `json:"userId" db:"user_id"`
	Name   string    `json:"name" db:"name"`
	Email  string    `json:"email" db:"email"`
	Role   string    `json:"role" db:"role"`
}

// CreateProjectRequest captures payload for creating a project
type CreateProjectRequest struct {
	Name    string  `json:"name"`
	Client  *string `json:"client,omitempty"`
	URL     *string `json:"url,omitempty"`
	DBURL   *string `json:"dbUrl,omitempty"`
	Factory *string `json:"factory,omitempty"`
	Unit    *string `json:"unit,omitempty"`
}

// UpdateProjectRequest captures payload for updating a project
type UpdateProjectRequest struct {
	Name    *string `json:"name,omitempty"`
	Client  *string `json:"client,omitempty"`
	URL     *string `json:"url,omitempty"`
	DBURL   *string `json:"dbUrl,omitempty"`
	Factory *string `json:"factory,omitempty"`
	Unit    *string `json:"unit,omitempty"`
}
