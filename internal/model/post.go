package model

import (
	"time"
)

type Post struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Content      string     `db:"content" json:"content"`
	ReportCount  int        `db:"report_count" json:"report_count"`
	IsHidden     bool       `db:"is_hidden" json:"is_hidden"`
	HiddenAt     *time.Time `db:"hidden_at" json:"hidden_at,omitempty"`
	HiddenReason *string    `db:"hidden_reason" json:"hidden_reason,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type Comment struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	PostID    string          `db:"post_id" json:"post_id"`
	Content   string          `db:"content" json:"content"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	Author    *ProfileSummary `db:"-" json:"profiles,omitempty"`
}

type CreateCommentParams struct {
	UserID  string
	PostID  string
	Content string
}

type Report struct {
	ID           string       `db:"id" json:"id"`
	ReporterID   *string      `db:"reporter_id" json:"reporter_id"`
	ReportedID   string       `db:"reported_id" json:"reported_id"`
	ReportedType ReportedType `db:"reported_type" json:"reported_type"`
	Reason       string       `db:"reason" json:"reason"`
	Description  *string      `db:"description" json:"description"`
	Status       ReportStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// CreateReportParams with a nil ReporterID records a system-generated report.
type CreateReportParams struct {
	ReporterID   *string
	ReportedID   string
	ReportedType ReportedType
	Reason       string
	Description  *string
}

type BlockedWord struct {
	ID        string    `db:"id" json:"id"`
	Word      string    `db:"word" json:"word"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedBy *string   `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateBlockedWordParams struct {
	Word     *string
	IsActive *bool
}
