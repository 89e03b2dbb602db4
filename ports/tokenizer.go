package ports

import "github.com/uaplabs/minidapps/core"

// Tokenizer converts between sessions and bearer tokens.
type Tokenizer interface {
	// SessionToToken signs a bearer token for the session.
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession parses and validates a bearer token. Expired tokens
	// return core.ErrTokenExpired, anything else malformed returns
	// core.ErrInvalidToken.
	TokenToSession(token string) (*core.Session, error)
}
