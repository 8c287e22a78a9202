package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/samrambhak/community-server-go/internal/errors"
	"github.com/samrambhak/community-server-go/internal/model"
	"github.com/samrambhak/community-server-go/internal/repository"
)

func TestBusinessService_Update(t *testing.T) {
	ctx := context.Background()
	owned := &model.Business{ID: "b1", OwnerID: "owner", Name: "Cafe"}

	t.Run("missing business is not found", func(t *testing.T) {
		repo := new(mockBusinessRepo)
		repo.On("FindByID", ctx, "b1").Return(nil, nil)

		_, err := NewBusinessService(repo).Update(ctx, "owner", "b1", model.Updates{"name": "x"})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Business not found", appErr.Message)
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		repo := new(mockBusinessRepo)
		repo.On("FindByID", ctx, "b1").Return(owned, nil)

		_, err := NewBusinessService(repo).Update(ctx, "stranger", "b1", model.Updates{"name": "x"})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
		assert.Equal(t, "You don't have permission to manage this business", appErr.Message)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner cannot touch admin columns", func(t *testing.T) {
		repo := new(mockBusinessRepo)
		repo.On("FindByID", ctx, "b1").Return(owned, nil)
		repo.On("Update", ctx, "b1", model.Updates{"name": "New"}, repository.BusinessOwnerColumns).
			Return(&model.Business{ID: "b1", OwnerID: "owner", Name: "New"}, nil)

		business, err := NewBusinessService(repo).Update(ctx, "owner", "b1", model.Updates{
			"name":            "New",
			"approval_status": "approved",
			"owner_id":        "someone-else",
		})
		require.NoError(t, err)
		assert.Equal(t, "New", business.Name)
		repo.AssertExpectations(t)
	})
}

func TestBusinessService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBusinessRepo)
	repo.On("FindByID", ctx, "b1").Return(&model.Business{ID: "b1", OwnerID: "owner"}, nil)
	repo.On("Delete", ctx, "b1").Return(nil)

	svc := NewBusinessService(repo)
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(svc.Delete(ctx, "stranger", "b1")))
	require.NoError(t, svc.Delete(ctx, "owner", "b1"))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestBusinessService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("first follow", func(t *testing.T) {
		repo := new(mockBusinessRepo)
		repo.On("Follow", ctx, "b1", "u1").Return(nil)

		already, err := NewBusinessService(repo).Follow(ctx, "u1", "b1")
		require.NoError(t, err)
		assert.False(t, already)
	})

	t.Run("duplicate follow is not an error", func(t *testing.T) {
		repo := new(mockBusinessRepo)
		repo.On("Follow", ctx, "b1", "u1").Return(&pq.Error{Code: "23505"})

		already, err := NewBusinessService(repo).Follow(ctx, "u1", "b1")
		require.NoError(t, err)
		assert.True(t, already)
	})

	t.Run("business id required", func(t *testing.T) {
		_, err := NewBusinessService(new(mockBusinessRepo)).Follow(ctx, "u1", "")
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})
}

func TestBusinessService_ListNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBusinessRepo)
	repo.On("ListByOwner", ctx, "owner").Return(nil, nil)

	list, err := NewBusinessService(repo).List(ctx, "owner")
	require.NoError(t, err)
	assert.NotNil(t, list)
}
