package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT with the pieces the auth capability needs.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] (RFC 7519) for standard claim access.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent in an Authorization header or
// stored in a session cookie.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to sub, exp, iat, nbf, iss, aud, jti.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Identity builds the caller identity carried by a verified token.
func (t *Token) Identity() Identity {
	identity := Identity{
		Subject: t.Subject,
		Issuer:  t.Issuer,
	}
	if t.ExpiresAt != nil {
		identity.ExpiresAt = t.ExpiresAt.Time
	}
	return identity
}
