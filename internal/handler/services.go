package handler

import (
	"context"

	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/service"
)

// The interfaces below are the slices of the service layer each handler
// depends on. The concrete implementations live in internal/service.

type MessagingService interface {
	GetConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error)
	GetMessages(ctx context.Context, userID, conversationID string) ([]model.Message, error)
	SendMessage(ctx context.Context, userID, conversationID, content string) (*model.Message, error)
	GetOrCreateConversation(ctx context.Context, userID, otherUserID string) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, userID, conversationID string) error
	DeleteMessage(ctx context.Context, userID, messageID string) error
	MarkRead(ctx context.Context, userID, conversationID string) error
}

type LikeService interface {
	Toggle(ctx context.Context, userID, postID string) (bool, error)
}

type CommentService interface {
	Create(ctx context.Context, userID, postID, content string) (*service.CreateCommentResult, error)
}

type ReportService interface {
	ReportPost(ctx context.Context, userID string, params service.ReportPostParams) (*service.ReportPostResult, error)
}

type BusinessService interface {
	List(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error)
	Update(ctx context.Context, userID, businessID string, updates model.Updates) (*model.Business, error)
	Delete(ctx context.Context, userID, businessID string) error
	Follow(ctx context.Context, userID, businessID string) (bool, error)
	Unfollow(ctx context.Context, userID, businessID string) error
}

type ProfileService interface {
	Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error)
	VerifyEmail(ctx context.Context, token string) error
}

type DeletionService interface {
	RequestDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error)
	CancelDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error)
	GetStatus(ctx context.Context, userID string) (*model.DeletionRequest, error)
	ListPending(ctx context.Context, adminID string) ([]model.PendingDeletion, error)
	AdminDeleteNow(ctx context.Context, adminID, userID string) error
	AdminDeleteDirect(ctx context.Context, adminID, userID string) error
}

type BlockedWordService interface {
	List(ctx context.Context) ([]model.BlockedWord, error)
	Add(ctx context.Context, adminID string, words []string) ([]model.BlockedWord, error)
	Update(ctx context.Context, adminID, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error)
	Delete(ctx context.Context, adminID, id string) error
}

type AdminDataService interface {
	Businesses(ctx context.Context) ([]model.BusinessWithOwner, error)
	Communities(ctx context.Context) ([]model.CommunityWithMembers, error)
	Jobs(ctx context.Context) ([]model.JobWithApplications, error)
	Stats(ctx context.Context) (*model.AdminStats, error)
	UpdateBusiness(ctx context.Context, adminID, id string, updates model.Updates) error
	UpdateCommunity(ctx context.Context, adminID, id string, updates model.Updates) error
	UpdateJob(ctx context.Context, adminID, id string, updates model.Updates) error
}

type SessionService interface {
	Validate(ctx context.Context, token string) (*string, error)
	Login(ctx context.Context, mobileNumber, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, token string) (bool, error)
	SignOut(ctx context.Context, token string) error
	AdminValidate(ctx context.Context, token string) (*service.AdminSession, error)
}

type SearchService interface {
	Search(ctx context.Context, query, category string) (*model.SearchResults, error)
}

var (
	_ MessagingService   = (*service.MessagingService)(nil)
	_ LikeService        = (*service.LikeService)(nil)
	_ CommentService     = (*service.CommentService)(nil)
	_ ReportService      = (*service.ReportService)(nil)
	_ BusinessService    = (*service.BusinessService)(nil)
	_ ProfileService     = (*service.ProfileService)(nil)
	_ DeletionService    = (*service.AccountDeletionService)(nil)
	_ BlockedWordService = (*service.BlockedWordService)(nil)
	_ AdminDataService   = (*service.AdminDataService)(nil)
	_ SessionService     = (*service.SessionService)(nil)
	_ SearchService      = (*service.SearchService)(nil)
)
