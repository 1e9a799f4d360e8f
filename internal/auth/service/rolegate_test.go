package service

import (
	"testing"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	t.Run("allows listed roles", func(t *testing.T) {
		mod := domain.User{Role: domain.RoleModerator}
		require.NoError(t, RequireRole(mod, domain.RoleModerator, domain.RoleAdmin))
	})

	t.Run("rejects everyone else", func(t *testing.T) {
		user := domain.User{Role: domain.RoleUser}
		require.ErrorIs(t, RequireRole(user, domain.RoleModerator, domain.RoleAdmin), ErrInsufficientRole)
	})

	t.Run("empty allow list rejects all", func(t *testing.T) {
		admin := domain.User{Role: domain.RoleAdmin}
		require.ErrorIs(t, RequireRole(admin), ErrInsufficientRole)
	})
}

func TestCanDeleteResource(t *testing.T) {
	owner := domain.User{ID: 7, Role: domain.RoleUser}
	stranger := domain.User{ID: 8, Role: domain.RoleUser}
	mod := domain.User{ID: 9, Role: domain.RoleModerator}
	admin := domain.User{ID: 10, Role: domain.RoleAdmin}

	require.True(t, CanDeleteResource(owner, 7))
	require.False(t, CanDeleteResource(stranger, 7))
	require.True(t, CanDeleteResource(mod, 7))
	require.True(t, CanDeleteResource(admin, 7))
}
