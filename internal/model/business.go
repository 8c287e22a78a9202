package model

import (
	"time"
)

type Business struct {
	ID             string         `db:"id" json:"id"`
	OwnerID        string         `db:"owner_id" json:"owner_id"`
	Name           string         `db:"name" json:"name"`
	Description    *string        `db:"description" json:"description"`
	Category       string         `db:"category" json:"category"`
	Location       *string        `db:"location" json:"location"`
	LogoURL        *string        `db:"logo_url" json:"logo_url"`
	CoverImageURL  *string        `db:"cover_image_url" json:"cover_image_url"`
	WebsiteURL     *string        `db:"website_url" json:"website_url"`
	InstagramLink  *string        `db:"instagram_link" json:"instagram_link"`
	YoutubeLink    *string        `db:"youtube_link" json:"youtube_link"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approval_status"`
	IsFeatured     bool           `db:"is_featured" json:"is_featured"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

type BusinessWithFollowers struct {
	Business
	FollowerCount int `db:"follower_count" json:"follower_count"`
}

// PersonName is the author/owner summary embedded in admin listings.
type PersonName struct {
	FullName *string `db:"full_name" json:"full_name"`
	Username *string `db:"username" json:"username"`
}

type BusinessWithOwner struct {
	Business
	Owner PersonName `db:"owner" json:"owner"`
}

type Community struct {
	ID             string         `db:"id" json:"id"`
	CreatedBy      string         `db:"created_by" json:"created_by"`
	Name           string         `db:"name" json:"name"`
	Description    *string        `db:"description" json:"description"`
	CoverImageURL  *string        `db:"cover_image_url" json:"cover_image_url"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approval_status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

type CommunityWithMembers struct {
	Community
	Creator     PersonName `db:"creator" json:"creator"`
	MemberCount int        `db:"member_count" json:"member_count"`
}

type Job struct {
	ID             string         `db:"id" json:"id"`
	CreatorID      string         `db:"creator_id" json:"creator_id"`
	Title          string         `db:"title" json:"title"`
	Description    *string        `db:"description" json:"description"`
	Location       *string        `db:"location" json:"location"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approval_status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

type JobWithApplications struct {
	Job
	Creator          PersonName `db:"creator" json:"creator"`
	ApplicationCount int        `db:"application_count" json:"application_count"`
}

// Updates maps a whitelisted column name to its new value.
type Updates map[string]any
