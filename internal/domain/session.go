package domain

import "time"

// SessionClaims is the decoded, verified payload of a session token.
// Sessions are stateless: validity is entirely a function of the token
// signature and expiry, so the server holds no session table.
type SessionClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
