package domain

// Tenant is the resolved identity of a request: the organization scope and
// the acting user. It is established by middleware before any domain logic
// runs; a request that cannot resolve a tenant is rejected as unauthorized.
type Tenant struct {
	OrgID  string
	UserID string
}
