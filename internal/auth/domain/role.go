package domain

// Role is a user's capability tier. The set is closed.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether the role may act on resources it does not own.
func (r Role) Privileged() bool {
	return r == RoleModerator || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
