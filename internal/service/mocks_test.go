package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/samrambhak/community-server-go/internal/database"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
	"github.com/samrambhak/community-server-go/internal/sse"
)

// fakeTx runs the function without a real transaction and records whether
// it committed.
type fakeTx struct {
	calls     int
	committed int
}

func (f *fakeTx) WithTx(ctx context.Context, fn database.TxFunc) error {
	f.calls++
	if err := fn(nil); err != nil {
		return err
	}
	f.committed++
	return nil
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) FindActiveByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionRepo) Extend(ctx context.Context, tokenHash string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, tokenHash, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) Deactivate(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) WithTx(tx *sqlx.Tx) repository.SessionRepository {
	return m
}

type mockCredentialRepo struct {
	mock.Mock
}

func (m *mockCredentialRepo) FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.Credential, error) {
	args := m.Called(ctx, mobileNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindSummary(ctx context.Context, id string) (*model.ProfileSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileSummary), args.Error(1)
}

func (m *mockProfileRepo) FindByVerificationToken(ctx context.Context, token string) (*model.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, id string, updates model.Updates) (*model.Profile, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfileRepo) MarkEmailVerified(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProfileRepo) WithTx(tx *sqlx.Tx) repository.ProfileRepository {
	return m
}

type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) FindByUserID(ctx context.Context, userID string) ([]model.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) FindByID(ctx context.Context, id string) (*model.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) FindByPair(ctx context.Context, one, two string) (*model.Conversation, error) {
	args := m.Called(ctx, one, two)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) Create(ctx context.Context, one, two string) (*model.Conversation, error) {
	args := m.Called(ctx, one, two)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) ListByParticipant(ctx context.Context, userID string) ([]model.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) TouchLastMessage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockConversationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockConversationRepo) WithTx(tx *sqlx.Tx) repository.ConversationRepository {
	return m
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id string) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *mockMessageRepo) Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkReadFromOthers(ctx context.Context, conversationID, userID string) (int64, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) FindLatest(ctx context.Context, conversationID string) (*model.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMessageRepo) DeleteByConversation(ctx context.Context, conversationID string) error {
	return m.Called(ctx, conversationID).Error(0)
}

func (m *mockMessageRepo) WithTx(tx *sqlx.Tx) repository.MessageRepository {
	return m
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) HasLike(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) AddLike(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockPostRepo) RemoveLike(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockPostRepo) SetReportCount(ctx context.Context, postID string, count int) error {
	return m.Called(ctx, postID, count).Error(0)
}

func (m *mockPostRepo) Hide(ctx context.Context, postID, reason string, at time.Time) (bool, error) {
	args := m.Called(ctx, postID, reason, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) WithTx(tx *sqlx.Tx) repository.PostRepository {
	return m
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, params model.CreateCommentParams) (*model.Comment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) ExistsForReporter(ctx context.Context, reporterID, reportedID string, reportedType model.ReportedType) (bool, error) {
	args := m.Called(ctx, reporterID, reportedID, reportedType)
	return args.Bool(0), args.Error(1)
}

func (m *mockReportRepo) Create(ctx context.Context, params model.CreateReportParams) (*model.Report, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *mockReportRepo) Count(ctx context.Context, reportedID string, reportedType model.ReportedType) (int, error) {
	args := m.Called(ctx, reportedID, reportedType)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepo) WithTx(tx *sqlx.Tx) repository.ReportRepository {
	return m
}

type mockBlockedWordRepo struct {
	mock.Mock
}

func (m *mockBlockedWordRepo) List(ctx context.Context) ([]model.BlockedWord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWordRepo) CreateMany(ctx context.Context, words []string, createdBy string) ([]model.BlockedWord, error) {
	args := m.Called(ctx, words, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWordRepo) Update(ctx context.Context, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWordRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlockedWordRepo) ContainsBlocked(ctx context.Context, content string) (bool, error) {
	args := m.Called(ctx, content)
	return args.Bool(0), args.Error(1)
}

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) FindByID(ctx context.Context, id string) (*model.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Business), args.Error(1)
}

func (m *mockBusinessRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BusinessWithFollowers), args.Error(1)
}

func (m *mockBusinessRepo) Update(ctx context.Context, id string, updates model.Updates, allowed map[string]bool) (*model.Business, error) {
	args := m.Called(ctx, id, updates, allowed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Business), args.Error(1)
}

func (m *mockBusinessRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBusinessRepo) Follow(ctx context.Context, businessID, userID string) error {
	return m.Called(ctx, businessID, userID).Error(0)
}

func (m *mockBusinessRepo) Unfollow(ctx context.Context, businessID, userID string) error {
	return m.Called(ctx, businessID, userID).Error(0)
}

type mockDeletionRepo struct {
	mock.Mock
}

func (m *mockDeletionRepo) FindPendingByUserID(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletionRequest), args.Error(1)
}

func (m *mockDeletionRepo) Create(ctx context.Context, userID string, requestedAt, scheduledAt time.Time) (*model.DeletionRequest, error) {
	args := m.Called(ctx, userID, requestedAt, scheduledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletionRequest), args.Error(1)
}

func (m *mockDeletionRepo) Cancel(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDeletionRepo) ListPending(ctx context.Context) ([]model.PendingDeletion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingDeletion), args.Error(1)
}

func (m *mockDeletionRepo) ListDue(ctx context.Context, now time.Time) ([]model.DeletionRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeletionRequest), args.Error(1)
}

func (m *mockDeletionRepo) MarkCompleted(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDeletionRepo) WithTx(tx *sqlx.Tx) repository.DeletionRequestRepository {
	return m
}

type mockPurgeRepo struct {
	mock.Mock
}

func (m *mockPurgeRepo) PurgeUserData(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockPurgeRepo) DeleteProfile(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockPurgeRepo) WithTx(tx *sqlx.Tx) repository.AccountPurgeRepository {
	return m
}

type mockActivityLogRepo struct {
	mock.Mock
}

func (m *mockActivityLogRepo) Create(ctx context.Context, params model.CreateActivityLogParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *mockActivityLogRepo) WithTx(tx *sqlx.Tx) repository.ActivityLogRepository {
	return m
}

type mockAdminDataRepo struct {
	mock.Mock
}

func (m *mockAdminDataRepo) ListBusinesses(ctx context.Context) ([]model.BusinessWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BusinessWithOwner), args.Error(1)
}

func (m *mockAdminDataRepo) ListCommunities(ctx context.Context) ([]model.CommunityWithMembers, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CommunityWithMembers), args.Error(1)
}

func (m *mockAdminDataRepo) ListJobs(ctx context.Context) ([]model.JobWithApplications, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobWithApplications), args.Error(1)
}

func (m *mockAdminDataRepo) UpdateCommunity(ctx context.Context, id string, updates model.Updates) (bool, error) {
	args := m.Called(ctx, id, updates)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminDataRepo) UpdateJob(ctx context.Context, id string, updates model.Updates) (bool, error) {
	args := m.Called(ctx, id, updates)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminDataRepo) Stats(ctx context.Context, topCategories int) (*model.AdminStats, error) {
	args := m.Called(ctx, topCategories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

type mockSearchRepo struct {
	mock.Mock
}

func (m *mockSearchRepo) Users(ctx context.Context, query string, limit int) ([]model.UserSearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSearchResult), args.Error(1)
}

func (m *mockSearchRepo) Businesses(ctx context.Context, query, category string, limit int) ([]model.BusinessSearchResult, error) {
	args := m.Called(ctx, query, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BusinessSearchResult), args.Error(1)
}

func (m *mockSearchRepo) Communities(ctx context.Context, query string, limit int) ([]model.CommunitySearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CommunitySearchResult), args.Error(1)
}

type recordingPublisher struct {
	events map[string][]sse.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: map[string][]sse.Event{}}
}

func (p *recordingPublisher) Publish(ctx context.Context, userID string, event sse.Event) error {
	p.events[userID] = append(p.events[userID], event)
	return nil
}

var (
	_ repository.SessionRepository         = (*mockSessionRepo)(nil)
	_ repository.CredentialRepository      = (*mockCredentialRepo)(nil)
	_ repository.ProfileRepository         = (*mockProfileRepo)(nil)
	_ repository.RoleRepository            = (*mockRoleRepo)(nil)
	_ repository.ConversationRepository    = (*mockConversationRepo)(nil)
	_ repository.MessageRepository         = (*mockMessageRepo)(nil)
	_ repository.PostRepository            = (*mockPostRepo)(nil)
	_ repository.CommentRepository         = (*mockCommentRepo)(nil)
	_ repository.ReportRepository          = (*mockReportRepo)(nil)
	_ repository.BlockedWordRepository     = (*mockBlockedWordRepo)(nil)
	_ repository.BusinessRepository        = (*mockBusinessRepo)(nil)
	_ repository.DeletionRequestRepository = (*mockDeletionRepo)(nil)
	_ repository.AccountPurgeRepository    = (*mockPurgeRepo)(nil)
	_ repository.ActivityLogRepository     = (*mockActivityLogRepo)(nil)
	_ repository.AdminDataRepository       = (*mockAdminDataRepo)(nil)
	_ repository.SearchRepository          = (*mockSearchRepo)(nil)
	_ database.Transactor                  = (*fakeTx)(nil)
	_ EventPublisher                       = (*recordingPublisher)(nil)
)
