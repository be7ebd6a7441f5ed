package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizengw/pkg/platform/sentinel"
)

const (
	aToken      = "eyJhbGciOiJSUzI1NiJ9.eyJmaXNjYWxDb2RlIjoiQUFBQkJCMDFDMDJEMzQ1RCJ9.c2ln"
	aFiscalCode = "AAABBB01C02D345D"
)

func TestMemoryStore_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	revoked, err := store.IsRevoked(ctx, aToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, aToken, aFiscalCode, time.Hour))

	revoked, err = store.IsRevoked(ctx, aToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Revoke(ctx, aToken, aFiscalCode, time.Hour))
	require.NoError(t, store.Revoke(ctx, aToken, aFiscalCode, time.Hour))

	revoked, err := store.IsRevoked(ctx, aToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_EntryExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithClock(func() time.Time { return now }))

	require.NoError(t, store.Revoke(ctx, aToken, aFiscalCode, 30*time.Minute))

	now = now.Add(29 * time.Minute)
	revoked, err := store.IsRevoked(ctx, aToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Exactly at the boundary the token itself has expired, so the entry
	// is gone too.
	now = now.Add(time.Minute)
	revoked, err = store.IsRevoked(ctx, aToken)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStore_RejectsNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Revoke(ctx, aToken, aFiscalCode, 0)
	require.ErrorIs(t, err, sentinel.ErrInvalidState)

	err = store.Revoke(ctx, aToken, aFiscalCode, -time.Second)
	require.ErrorIs(t, err, sentinel.ErrInvalidState)
}
