package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignValue appends an HMAC-SHA256 signature to value.
//
// The result has the form "<value>.<signature>" where signature is the
// unpadded standard base64 encoding of the digest. This is the format used
// for signed session cookies.
//
// Example usage:
//
//	signed := utils.SignValue("eyJhbGciOi...", "cookie-secret")
func SignValue(value, secret string) string {
	return value + "." + signature(value, secret)
}

// UnsignValue verifies a value produced by [SignValue] and returns the
// original value.
//
// ok is false when signed has no signature part or the signature does not
// match. The comparison is constant-time.
func UnsignValue(signed, secret string) (value string, ok bool) {
	idx := strings.LastIndexByte(signed, '.')
	if idx < 0 {
		return "", false
	}

	value = signed[:idx]
	expected := signature(value, secret)
	if !hmac.Equal([]byte(expected), []byte(signed[idx+1:])) {
		return "", false
	}

	return value, true
}

// signature computes the unpadded base64 HMAC-SHA256 digest of data.
func signature(data, secret string) string {
	return base64.RawStdEncoding.EncodeToString(hashString([]byte(data), secret))
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
// A new HMAC instance is created on each call.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
