package model

import "github.com/google/uuid"

// AccessClaims are the verified contents of an access token. Access tokens
// are stateless: possession of a token with a valid signature and unexpired
// claims is the whole proof.
type AccessClaims struct {
	UserID   uuid.UUID
	Username string
}

// RefreshClaims are the verified contents of a refresh token. A structurally
// valid refresh token is not sufficient on its own: the session service must
// confirm it against the revocation store before honoring it.
type RefreshClaims struct {
	UserID uuid.UUID
}

// TokenCodec creates and verifies signed access and refresh tokens. The two
// kinds are never interchangeable: parsing a token of the wrong kind fails
// with ErrTokenMalformed.
type TokenCodec interface {
	IssueAccess(userID uuid.UUID, username string) (string, error)
	IssueRefresh(userID uuid.UUID) (string, error)
	ParseAccess(token string) (AccessClaims, error)
	ParseRefresh(token string) (RefreshClaims, error)
}
