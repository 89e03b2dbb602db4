package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by a session bearer token. The
// subject holds the lower-cased wallet address.
type SessionClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}
