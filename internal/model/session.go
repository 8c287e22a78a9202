package model

import (
	"time"
)

type Session struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	SessionTokenHash string     `db:"session_token_hash" json:"-"`
	IsActive         bool       `db:"is_active" json:"isActive"`
	ExpiresAt        time.Time  `db:"expires_at" json:"expiresAt"`
	LastRefreshedAt  *time.Time `db:"last_refreshed_at" json:"lastRefreshedAt,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

type CreateSessionParams struct {
	UserID           string
	SessionTokenHash string
	ExpiresAt        time.Time
}

type Credential struct {
	ID           string `db:"id"`
	MobileNumber string `db:"mobile_number"`
	PasswordHash string `db:"password_hash"`
}
