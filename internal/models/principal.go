package models

// PrincipalKind discriminates how the current request was authenticated and
// what role it carries.
type PrincipalKind string

const (
	PrincipalAnonymous PrincipalKind = "anonymous"
	PrincipalCustomer  PrincipalKind = "customer"
	PrincipalSeller    PrincipalKind = "seller"
	PrincipalAdmin     PrincipalKind = "admin"
	PrincipalApiKey    PrincipalKind = "api_key"
)

// Principal is the resolved identity for the current request. It is built
// once per request and never persisted. Both authentication schemes produce
// this same shape: bearer tokens fill UserID and leave SellerID empty (the
// authorization engine resolves it lazily), API keys fill SellerID directly
// and have no UserID.
type Principal struct {
	Kind     PrincipalKind
	UserID   string
	SellerID string
	Email    string
}

// IsAdmin reports whether the principal bypasses ownership checks.
func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalAdmin
}

// ActsAsSeller reports whether the principal can own seller resources.
func (p Principal) ActsAsSeller() bool {
	return p.Kind == PrincipalSeller || p.Kind == PrincipalApiKey
}
