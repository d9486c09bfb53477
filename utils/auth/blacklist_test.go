package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/nmdong/VietThanhProductions/database"
	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistAddIsIdempotent(t *testing.T) {
	store, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	denylist := auth.NewBlacklistService(store.GetDB())
	ctx := context.Background()
	uid := uint(5)
	exp := time.Now().Add(time.Hour)

	require.NoError(t, denylist.Add(ctx, "jti-1", model.TokenTypeAccess, &uid, exp))
	require.NoError(t, denylist.Add(ctx, "jti-1", model.TokenTypeAccess, &uid, exp))

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	var count int64
	require.NoError(t, store.GetDB().Model(&model.RevokedToken{}).Where("jti = ?", "jti-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBlacklistUnknownIdentifier(t *testing.T) {
	denylist := newDenylist(t)

	revoked, err := denylist.IsRevoked(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistWithoutUser(t *testing.T) {
	denylist := newDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Add(ctx, "orphan", model.TokenTypeRefresh, nil, time.Now().Add(time.Hour)))

	revoked, err := denylist.IsRevoked(ctx, "orphan")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestBlacklistPrune(t *testing.T) {
	denylist := newDenylist(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, denylist.Add(ctx, "expired", model.TokenTypeAccess, nil, now.Add(-time.Hour)))
	require.NoError(t, denylist.Add(ctx, "live", model.TokenTypeRefresh, nil, now.Add(time.Hour)))

	pruned, err := denylist.Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	revoked, err := denylist.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = denylist.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}
