package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samrambhak/community-server-go/internal/model"
)

func TestSearchService_BlankQuery(t *testing.T) {
	repo := new(mockSearchRepo)
	results, err := NewSearchService(repo, 20).Search(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.Empty(t, results.Users)
	assert.NotNil(t, results.Users)
	assert.NotNil(t, results.Businesses)
	assert.NotNil(t, results.Communities)
	repo.AssertNotCalled(t, "Users")
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	name := "Asha"
	repo := new(mockSearchRepo)
	repo.On("Users", ctx, "ash", 20).Return([]model.UserSearchResult{{ID: "u1", FullName: &name}}, nil)
	repo.On("Businesses", ctx, "ash", "food", 20).Return(nil, nil)
	repo.On("Communities", ctx, "ash", 20).Return(nil, nil)

	results, err := NewSearchService(repo, 20).Search(ctx, " ash ", "food")
	require.NoError(t, err)
	require.Len(t, results.Users, 1)
	assert.Equal(t, "u1", results.Users[0].ID)
	assert.NotNil(t, results.Businesses)
	assert.Empty(t, results.Communities)
}
