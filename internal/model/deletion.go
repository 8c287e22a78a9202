package model

import (
	"encoding/json"
	"time"
)

type DeletionRequest struct {
	ID                  string         `db:"id" json:"id"`
	UserID              string         `db:"user_id" json:"user_id"`
	RequestedAt         time.Time      `db:"requested_at" json:"requested_at"`
	ScheduledDeletionAt time.Time      `db:"scheduled_deletion_at" json:"scheduled_deletion_at"`
	Status              DeletionStatus `db:"status" json:"status"`
	CancelledAt         *time.Time     `db:"cancelled_at" json:"cancelled_at"`
	DeletedAt           *time.Time     `db:"deleted_at" json:"deleted_at"`
}

// PendingDeletion is a pending request joined with the requesting profile.
// The profile falls back to just the user id when the profile row is gone.
type PendingDeletion struct {
	DeletionRequest
	Profile DeletionProfile `db:"profiles" json:"profiles"`
}

type DeletionProfile struct {
	ID           string  `db:"id" json:"id"`
	FullName     *string `db:"full_name" json:"full_name"`
	Username     *string `db:"username" json:"username"`
	AvatarURL    *string `db:"avatar_url" json:"avatar_url"`
	Email        *string `db:"email" json:"email"`
	MobileNumber *string `db:"mobile_number" json:"mobile_number"`
}

type AdminActivityLog struct {
	ID         string           `db:"id" json:"id"`
	AdminID    string           `db:"admin_id" json:"admin_id"`
	Action     string           `db:"action" json:"action"`
	TargetType TargetType       `db:"target_type" json:"target_type"`
	TargetID   string           `db:"target_id" json:"target_id"`
	Details    *json.RawMessage `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

type CreateActivityLogParams struct {
	AdminID    string
	Action     string
	TargetType TargetType
	TargetID   string
	Details    any
}
