package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashedIdentity_UserHash_Stable(t *testing.T) {
	identity := NewHashedIdentity()
	ctx := WithPrincipal(context.Background(), "alice@example.com")

	first, err := identity.UserHash(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := identity.UserHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHashedIdentity_UserHash_DistinctUsers(t *testing.T) {
	identity := NewHashedIdentity()

	alice, err := identity.UserHash(WithPrincipal(context.Background(), "alice@example.com"))
	require.NoError(t, err)

	bob, err := identity.UserHash(WithPrincipal(context.Background(), "bob@example.com"))
	require.NoError(t, err)

	assert.NotEqual(t, alice, bob)
}

func TestHashedIdentity_UserHash_NoPrincipal(t *testing.T) {
	identity := NewHashedIdentity()

	_, err := identity.UserHash(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestPrincipalFrom_EmptyPrincipal(t *testing.T) {
	_, ok := PrincipalFrom(WithPrincipal(context.Background(), ""))
	assert.False(t, ok)
}
