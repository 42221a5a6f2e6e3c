package domain

// Principal identifies the authenticated caller of a request.
// UserID is the identity provider's subject claim.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
