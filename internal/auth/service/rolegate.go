package service

import "github.com/snapvault/snapvault/internal/auth/domain"

// RequireRole checks the user's role against an allow list. Layered on top
// of an access-scope Resolve result, never on raw claims.
func RequireRole(user domain.User, allowed ...domain.Role) error {
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}

// CanDeleteResource is the single ownership-or-privilege rule shared by every
// delete and modify path: moderators and admins may act on anything, everyone
// else only on what they own.
func CanDeleteResource(user domain.User, ownerID int64) bool {
	return user.Role.Privileged() || user.ID == ownerID
}
