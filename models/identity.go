package models

import "time"

// Identity is the verified caller attached to the request context by the
// authenticate decorator. Route handlers read it with
// utils.IdentityFromContext.
type Identity struct {
	// Subject is the "sub" claim of the verified credential.
	Subject string `json:"subject"`

	// Issuer is the "iss" claim of the verified credential.
	Issuer string `json:"issuer"`

	// ExpiresAt is the moment the credential stops being accepted.
	// Zero when the credential carries no expiry.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}
