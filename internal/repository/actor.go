package repository

// Role values stored in users.role and carried in the JWT role claim.
// Authorization compares against RoleAdmin only: a "superadmin" actor is
// an ordinary non-admin user for every ownership decision.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Actor is the authenticated caller as extracted from the access token.
// Repositories trust these values as-is; the ownership policy methods are
// pure decision functions with no side effects.
type Actor struct {
	ID   uint64
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccess reports whether the actor may operate on a resource recorded
// as belonging to ownerID.
func (a Actor) CanAccess(ownerID uint64) bool { return a.IsAdmin() || a.ID == ownerID }

// Authorize returns an unauthorized error when CanAccess is false. It is
// called before every mutating operation and before every read that is
// not explicitly public.
func (a Actor) Authorize(ownerID uint64) error {
	if !a.CanAccess(ownerID) {
		return unauthorized("Unauthorized")
	}
	return nil
}
