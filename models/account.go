// models/account.go
package models

import "time"

// RemoteAccount is the account record owned by the hosted auth service.
// This system references it, it never stores credentials.
type RemoteAccount struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// RemoteSession is the session payload returned by the auth service on
// successful password sign-in.
type RemoteSession struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"`
	User        RemoteAccount `json:"user"`
}

// SessionInfo is the locally consumed view of an active session.
type SessionInfo struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CredentialsRequest is the body of sign-up and sign-in requests.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of the forgot-password request.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}
