package model

// Session is the single persisted admin login record. Exactly one exists at
// a time; a new login replaces it. Expiry is absolute from IssuedAt, never
// extended by reads.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	IssuedAt        int64  `json:"timestamp"` // unix milliseconds
	Username        string `json:"username"`
	SessionID       string `json:"sessionId"`
	TokenHash       string `json:"tokenHash"`
}
