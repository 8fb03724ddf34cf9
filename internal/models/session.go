package models

// Session is the authenticated identity for a request, resolved by the
// session middleware from a signed cookie and passed explicitly into service
// calls (never ambient state).
type Session struct {
	ProfileID string `json:"profileId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}
