// Package identity carries the authenticated caller through a request and
// answers capability questions about it.
package identity

// Role names as stored in the roles table.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the resolved caller: user id plus role name, extracted from a
// verified bearer token.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// CanAccess reports whether the caller may read a resource owned by the
// customer ownerID. callerCustomerID is the caller's own customer profile id
// ("" when the caller has no profile). Admins may read anything.
func CanAccess(i Identity, callerCustomerID, ownerID string) bool {
	if i.IsAdmin() {
		return true
	}
	return callerCustomerID != "" && callerCustomerID == ownerID
}
