package services

import (
	"context"
	"testing"

	"conduit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")

	profile, err := s.profiles.GetProfile(ctx, "jake", "")
	require.NoError(t, err)
	assert.Equal(t, "jake", profile.Username)
	assert.False(t, profile.Following)

	_, err = s.profiles.GetProfile(ctx, "ghost", "anne")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFollowUnfollow(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")

	profile, err := s.profiles.Follow(ctx, "jake", "anne")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	profile, err = s.profiles.Follow(ctx, "jake", "anne")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	var edges int64
	require.NoError(t, s.db.Model(&models.FollowedPeople{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)

	// following is directional
	reverse, err := s.profiles.GetProfile(ctx, "anne", "jake")
	require.NoError(t, err)
	assert.False(t, reverse.Following)

	profile, err = s.profiles.Unfollow(ctx, "jake", "anne")
	require.NoError(t, err)
	assert.False(t, profile.Following)

	profile, err = s.profiles.Unfollow(ctx, "jake", "anne")
	require.NoError(t, err)
	assert.False(t, profile.Following)

	_, err = s.profiles.Follow(ctx, "ghost", "anne")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.profiles.Follow(ctx, "jake", "")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
