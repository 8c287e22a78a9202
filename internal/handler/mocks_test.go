package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samrambhak/community-server-go/internal/middleware"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/service"
)

// newRequest builds a POST with a JSON body, authenticated as userID when
// userID is non-empty.
const (
	testConversationID = "0b6f3a52-6d1e-4c1a-9f0e-2d5a7c3e9a10"
	testOtherUserID    = "5c9e2f14-3b7a-4e8d-a1c6-7f2b9d0e4a21"
	testMessageID      = "8e1d4b7a-2c5f-4a9e-b3d6-0f7c1a2e5b32"
	testPostID         = "a3c7e9b1-4d2f-4e6a-8b5c-1d9f3e7a0c43"
	testBusinessID     = "c4e8a0b2-5f3d-4a7b-9c6e-2e0a4f8b1d54"
	testTargetUserID   = "d5f9b1c3-6a4e-4b8c-8d7f-3f1b5a9c2e65"
	testWordID         = "e6a0c2d4-7b5f-4c9d-9e8a-4a2c6b0d3f76"
	testJobID          = "f7b1d3e5-8c6a-4dae-8f9b-5b3d7c1e4a87"
	testCommunityID    = "1a2b3c4d-9d7b-4ebf-9a0c-6c4e8d2f5b98"
)

func newRequest(path, body, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type mockMessaging struct{ mock.Mock }

func (m *mockMessaging) GetConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.ConversationSummary), args.Error(1)
}

func (m *mockMessaging) GetMessages(ctx context.Context, userID, conversationID string) ([]model.Message, error) {
	args := m.Called(ctx, userID, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *mockMessaging) SendMessage(ctx context.Context, userID, conversationID, content string) (*model.Message, error) {
	args := m.Called(ctx, userID, conversationID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *mockMessaging) GetOrCreateConversation(ctx context.Context, userID, otherUserID string) (*model.Conversation, error) {
	args := m.Called(ctx, userID, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockMessaging) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	return m.Called(ctx, userID, conversationID).Error(0)
}

func (m *mockMessaging) DeleteMessage(ctx context.Context, userID, messageID string) error {
	return m.Called(ctx, userID, messageID).Error(0)
}

func (m *mockMessaging) MarkRead(ctx context.Context, userID, conversationID string) error {
	return m.Called(ctx, userID, conversationID).Error(0)
}

type mockLikes struct{ mock.Mock }

func (m *mockLikes) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

type mockComments struct{ mock.Mock }

func (m *mockComments) Create(ctx context.Context, userID, postID, content string) (*service.CreateCommentResult, error) {
	args := m.Called(ctx, userID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateCommentResult), args.Error(1)
}

type mockReports struct{ mock.Mock }

func (m *mockReports) ReportPost(ctx context.Context, userID string, params service.ReportPostParams) (*service.ReportPostResult, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportPostResult), args.Error(1)
}

type mockBusinesses struct{ mock.Mock }

func (m *mockBusinesses) List(ctx context.Context, ownerID string) ([]model.BusinessWithFollowers, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.BusinessWithFollowers), args.Error(1)
}

func (m *mockBusinesses) Update(ctx context.Context, userID, businessID string, updates model.Updates) (*model.Business, error) {
	args := m.Called(ctx, userID, businessID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Business), args.Error(1)
}

func (m *mockBusinesses) Delete(ctx context.Context, userID, businessID string) error {
	return m.Called(ctx, userID, businessID).Error(0)
}

func (m *mockBusinesses) Follow(ctx context.Context, userID, businessID string) (bool, error) {
	args := m.Called(ctx, userID, businessID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBusinesses) Unfollow(ctx context.Context, userID, businessID string) error {
	return m.Called(ctx, userID, businessID).Error(0)
}

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfiles) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockDeletions struct{ mock.Mock }

func (m *mockDeletions) RequestDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletionRequest), args.Error(1)
}

func (m *mockDeletions) CancelDeletion(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletionRequest), args.Error(1)
}

func (m *mockDeletions) GetStatus(ctx context.Context, userID string) (*model.DeletionRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletionRequest), args.Error(1)
}

func (m *mockDeletions) ListPending(ctx context.Context, adminID string) ([]model.PendingDeletion, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingDeletion), args.Error(1)
}

func (m *mockDeletions) AdminDeleteNow(ctx context.Context, adminID, userID string) error {
	return m.Called(ctx, adminID, userID).Error(0)
}

func (m *mockDeletions) AdminDeleteDirect(ctx context.Context, adminID, userID string) error {
	return m.Called(ctx, adminID, userID).Error(0)
}

type mockBlockedWords struct{ mock.Mock }

func (m *mockBlockedWords) List(ctx context.Context) ([]model.BlockedWord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWords) Add(ctx context.Context, adminID string, words []string) ([]model.BlockedWord, error) {
	args := m.Called(ctx, adminID, words)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWords) Update(ctx context.Context, adminID, id string, params model.UpdateBlockedWordParams) (*model.BlockedWord, error) {
	args := m.Called(ctx, adminID, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlockedWord), args.Error(1)
}

func (m *mockBlockedWords) Delete(ctx context.Context, adminID, id string) error {
	return m.Called(ctx, adminID, id).Error(0)
}

type mockAdminData struct{ mock.Mock }

func (m *mockAdminData) Businesses(ctx context.Context) ([]model.BusinessWithOwner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BusinessWithOwner), args.Error(1)
}

func (m *mockAdminData) Communities(ctx context.Context) ([]model.CommunityWithMembers, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.CommunityWithMembers), args.Error(1)
}

func (m *mockAdminData) Jobs(ctx context.Context) ([]model.JobWithApplications, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.JobWithApplications), args.Error(1)
}

func (m *mockAdminData) Stats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

func (m *mockAdminData) UpdateBusiness(ctx context.Context, adminID, id string, updates model.Updates) error {
	return m.Called(ctx, adminID, id, updates).Error(0)
}

func (m *mockAdminData) UpdateCommunity(ctx context.Context, adminID, id string, updates model.Updates) error {
	return m.Called(ctx, adminID, id, updates).Error(0)
}

func (m *mockAdminData) UpdateJob(ctx context.Context, adminID, id string, updates model.Updates) error {
	return m.Called(ctx, adminID, id, updates).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Validate(ctx context.Context, token string) (*string, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *mockSessions) Login(ctx context.Context, mobileNumber, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, mobileNumber, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *mockSessions) Refresh(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessions) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessions) AdminValidate(ctx context.Context, token string) (*service.AdminSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminSession), args.Error(1)
}

type mockSearch struct{ mock.Mock }

func (m *mockSearch) Search(ctx context.Context, query, category string) (*model.SearchResults, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResults), args.Error(1)
}
