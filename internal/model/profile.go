package model

import (
	"time"
)

type Profile struct {
	ID                      string     `db:"id" json:"id"`
	FullName                *string    `db:"full_name" json:"full_name"`
	Username                *string    `db:"username" json:"username"`
	AvatarURL               *string    `db:"avatar_url" json:"avatar_url"`
	Bio                     *string    `db:"bio" json:"bio"`
	Location                *string    `db:"location" json:"location"`
	Email                   *string    `db:"email" json:"email,omitempty"`
	MobileNumber            *string    `db:"mobile_number" json:"mobile_number,omitempty"`
	IsOnline                bool       `db:"is_online" json:"is_online"`
	LastSeen                *time.Time `db:"last_seen" json:"last_seen"`
	ShowEmail               bool       `db:"show_email" json:"show_email"`
	ShowMobile              bool       `db:"show_mobile" json:"show_mobile"`
	ShowLocation            bool       `db:"show_location" json:"show_location"`
	IsVerified              bool       `db:"is_verified" json:"is_verified"`
	EmailVerified           bool       `db:"email_verified" json:"email_verified"`
	EmailVerificationToken  *string    `db:"email_verification_token" json:"-"`
	EmailVerificationSentAt *time.Time `db:"email_verification_sent_at" json:"-"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

// ProfileSummary is the public slice of a profile embedded in other payloads.
type ProfileSummary struct {
	ID        string  `db:"id" json:"id"`
	FullName  *string `db:"full_name" json:"full_name"`
	Username  *string `db:"username" json:"username"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
	IsOnline  bool    `db:"is_online" json:"is_online"`
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Nil pointers are left untouched.
type ProfileUpdate struct {
	FullName     *string    `json:"full_name" db:"full_name"`
	Username     *string    `json:"username" db:"username" validate:"omitempty,min=3,max=30"`
	AvatarURL    *string    `json:"avatar_url" db:"avatar_url" validate:"omitempty,url"`
	Bio          *string    `json:"bio" db:"bio" validate:"omitempty,max=500"`
	Location     *string    `json:"location" db:"location"`
	IsOnline     *bool      `json:"is_online" db:"is_online"`
	LastSeen     *time.Time `json:"last_seen" db:"last_seen"`
	ShowEmail    *bool      `json:"show_email" db:"show_email"`
	ShowMobile   *bool      `json:"show_mobile" db:"show_mobile"`
	ShowLocation *bool      `json:"show_location" db:"show_location"`
}

type UserRole struct {
	UserID string `db:"user_id" json:"user_id"`
	Role   Role   `db:"role" json:"role"`
}

// Fields returns the non-nil fields keyed by column name.
func (u ProfileUpdate) Fields() Updates {
	out := Updates{}
	set := func(col string, isNil bool, v any) {
		if !isNil {
			out[col] = v
		}
	}
	set("full_name", u.FullName == nil, u.FullName)
	set("username", u.Username == nil, u.Username)
	set("avatar_url", u.AvatarURL == nil, u.AvatarURL)
	set("bio", u.Bio == nil, u.Bio)
	set("location", u.Location == nil, u.Location)
	set("is_online", u.IsOnline == nil, u.IsOnline)
	set("last_seen", u.LastSeen == nil, u.LastSeen)
	set("show_email", u.ShowEmail == nil, u.ShowEmail)
	set("show_mobile", u.ShowMobile == nil, u.ShowMobile)
	set("show_location", u.ShowLocation == nil, u.ShowLocation)
	return out
}
