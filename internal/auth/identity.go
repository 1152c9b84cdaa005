package auth

// Role is the kind of account a user holds.
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// ValidRole returns true if s is a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleClient, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated principal as seen by the data-access layer.
// It is built from session state only and never touches business tables.
type Identity struct {
	UserID        int64
	Email         string
	FirstName     string
	LastName      string
	Role          Role
	Authenticated bool
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// IsAdmin returns true for authenticated admin identities.
func (i Identity) IsAdmin() bool {
	return i.Authenticated && i.Role == RoleAdmin
}

// String returns the display name, or "Anonymous" for unauthenticated callers.
func (i Identity) String() string {
	if !i.Authenticated {
		return "Anonymous"
	}
	return i.FirstName + " " + i.LastName
}
