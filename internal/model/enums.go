package model

type Role string

const (
	RoleSuperAdmin       Role = "super_admin"
	RoleContentModerator Role = "content_moderator"
	RoleCategoryManager  Role = "category_manager"
)

// AllRoles lists every administrative role label.
var AllRoles = []Role{RoleSuperAdmin, RoleContentModerator, RoleCategoryManager}

type DeletionStatus string

const (
	DeletionStatusPending   DeletionStatus = "pending"
	DeletionStatusCancelled DeletionStatus = "cancelled"
	DeletionStatusCompleted DeletionStatus = "completed"
)

type ReportedType string

const (
	ReportedTypePost    ReportedType = "post"
	ReportedTypeComment ReportedType = "comment"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

var ApprovalStatuses = []string{
	string(ApprovalStatusPending),
	string(ApprovalStatusApproved),
	string(ApprovalStatusRejected),
}

// TargetType names the entity an admin activity log row refers to.
type TargetType string

const (
	TargetTypeUser      TargetType = "user"
	TargetTypeBusiness  TargetType = "business"
	TargetTypeCommunity TargetType = "community"
	TargetTypeJob       TargetType = "job"
	TargetTypeWord      TargetType = "blocked_word"
)
