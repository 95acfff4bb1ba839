package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Record is one work session. A row with a null logout time is an open
// session; at most one may exist per user at any time.
type Record struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"userId"`
	LoginTime     time.Time  `db:"login_time" json:"loginTime"`
	LogoutTime    *time.Time `db:"logout_time" json:"logoutTime,omitempty"`
	AvailableTime *int64     `db:"available_time" json:"availableTime,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// StartRequest captures payload for clocking in
type StartRequest struct {
	UserID    uuid.UUID `json:"userId"`
	LoginTime time.Time `json:"loginTime"`
}

// EndRequest captures payload for clocking out. WorkDuration is the
// client-computed elapsed seconds and is advisory only.
type EndRequest struct {
	UserID       uuid.UUID `json:"userId"`
	LogoutTime   time.Time `json:"logoutTime"`
	WorkDuration int64     `json:"workDuration"`
}
