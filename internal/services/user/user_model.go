package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin            Role = "admin"
	RoleSoftwareEngineer Role = "software-engineer"
	RoleViewer           Role = "viewer"
	// Wire value kept as stored by the legacy data set.
	RoleRoamingInspector Role = "roming-quality-inspector"
)

func AllRoles() []Role {
	return []Role{RoleAdmin, RoleSoftwareEngineer, RoleViewer, RoleRoamingInspector}
}

// ParseRole maps a raw role string onto the closed enum. Unknown values are
// rejected so authorization decisions fail closed.
func ParseRole(raw string) (Role, error) {
	for _, r := range AllRoles() {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	PinHash      *string    `db:"pin_hash" json:"-"`
	Role         Role       `db:"role" json:"role"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	RecentLogin  *time.Time `db:"recent_login" json:"recent_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// RegisterRequest captures payload for creating a portal user
type RegisterRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRequest captures payload for updating a portal user
type UpdateRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Pin      string `json:"pin,omitempty"`
}
