package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nmdong/VietThanhProductions/database"
	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-please-change"

func newDenylist(t *testing.T) *auth.BlacklistService {
	t.Helper()
	store, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return auth.NewBlacklistService(store.GetDB())
}

func newManager(t *testing.T, denylist auth.Denylist) *auth.JWTManager {
	t.Helper()
	return auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Issuer: "test"}, denylist)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager(t, newDenylist(t))

	token, jti, err := m.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.Verify(context.Background(), token, model.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, model.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "42", claims.Subject)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, auth.DefaultAccessExpiry, lifetime)
}

func TestRefreshTokenLifetime(t *testing.T) {
	m := newManager(t, newDenylist(t))

	token, _, err := m.GenerateRefreshToken(7)
	require.NoError(t, err)

	claims, err := m.Verify(context.Background(), token, model.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultRefreshExpiry, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIdentifiersAreUnique(t *testing.T) {
	m := newManager(t, newDenylist(t))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		_, jti, err := m.GenerateAccessToken(1)
		require.NoError(t, err)
		require.False(t, seen[jti], "duplicate jti %s", jti)
		seen[jti] = true
	}
}

func TestExpiredTokenFails(t *testing.T) {
	denylist := newDenylist(t)
	past := func() time.Time { return time.Now().Add(-time.Hour) }
	minter := auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Issuer: "test", Clock: past}, denylist)
	verifier := newManager(t, denylist)

	token, _, err := minter.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestCrossTypeRejected(t *testing.T) {
	m := newManager(t, newDenylist(t))
	ctx := context.Background()

	access, _, err := m.GenerateAccessToken(1)
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)

	_, err = m.Verify(ctx, access, model.TokenTypeRefresh)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	_, err = m.Verify(ctx, refresh, model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestRevokedTokenFails(t *testing.T) {
	m := newManager(t, newDenylist(t))
	ctx := context.Background()

	token, _, err := m.GenerateAccessToken(3)
	require.NoError(t, err)

	claims, err := m.Verify(ctx, token, model.TokenTypeAccess)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, claims))
	require.NoError(t, m.Revoke(ctx, claims), "second revoke must be a no-op")

	_, err = m.Verify(ctx, token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRevokingOneTokenLeavesOthersValid(t *testing.T) {
	m := newManager(t, newDenylist(t))
	ctx := context.Background()

	first, _, err := m.GenerateAccessToken(3)
	require.NoError(t, err)
	second, _, err := m.GenerateAccessToken(3)
	require.NoError(t, err)

	claims, err := m.Verify(ctx, first, model.TokenTypeAccess)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, claims))

	_, err = m.Verify(ctx, second, model.TokenTypeAccess)
	assert.NoError(t, err)
}

func TestTamperedTokenFails(t *testing.T) {
	m := newManager(t, newDenylist(t))

	alice, _, err := m.GenerateAccessToken(1)
	require.NoError(t, err)
	mallory, _, err := m.GenerateAccessToken(2)
	require.NoError(t, err)

	// alice's header and signature around mallory's claims
	a := strings.Split(alice, ".")
	b := strings.Split(mallory, ".")
	forged := strings.Join([]string{a[0], b[1], a[2]}, ".")

	_, err = m.Verify(context.Background(), forged, model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestWrongSecretFails(t *testing.T) {
	denylist := newDenylist(t)
	other := auth.NewJWTManager(auth.JWTConfig{Secret: "another-secret", Issuer: "test"}, denylist)
	m := newManager(t, denylist)

	token, _, err := other.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGarbageTokenFails(t *testing.T) {
	m := newManager(t, newDenylist(t))

	_, err := m.Verify(context.Background(), "not-a-jwt", model.TokenTypeAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeSkipsValidation(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-time.Hour) }
	m := auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Clock: past}, newDenylist(t))

	token, jti, err := m.GenerateRefreshToken(9)
	require.NoError(t, err)

	claims, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, model.TokenTypeRefresh, claims.TokenType)
}

func TestClaimsUserID(t *testing.T) {
	tests := []struct {
		subject string
		wantErr bool
	}{
		{"15", false},
		{"", true},
		{"0", true},
		{"abc", true},
		{"-3", true},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			c := &auth.Claims{}
			c.Subject = tt.subject
			_, err := c.UserID()
			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidClaims)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
