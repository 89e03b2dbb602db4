package core

import "time"

// NonceRecord is a single-use sign-in challenge held for one wallet address.
type NonceRecord struct {
	Address  string    // Lower-cased Ethereum address the nonce was issued to
	Nonce    string    // Random value that must appear in the signed message
	IssuedAt time.Time // When the nonce was issued
}

// Session represents an authenticated wallet session. Sessions are stateless:
// validity is solely a function of token signature and expiry.
type Session struct {
	ID        string    // Unique session identifier
	Address   string    // Lower-cased Ethereum address of the user
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}

// SignInResult is returned on a successful sign-in.
type SignInResult struct {
	Token   string // Signed bearer token
	Address string // Lower-cased address the token is bound to
}
