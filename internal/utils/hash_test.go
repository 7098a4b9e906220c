// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieSecret = "test-cookie-secret"

func TestSignValue_Format(t *testing.T) {
	signed := SignValue("token-value", testCookieSecret)

	mac := hmac.New(sha256.New, []byte(testCookieSecret))
	mac.Write([]byte("token-value"))
	want := "token-value." + base64.RawStdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, signed)
	assert.False(t, strings.HasSuffix(signed, "="), "signature must be unpadded")
}

func TestSignValue_Deterministic(t *testing.T) {
	assert.Equal(t, SignValue("v", testCookieSecret), SignValue("v", testCookieSecret))
}

func TestSignValue_DifferentSecrets(t *testing.T) {
	assert.NotEqual(t, SignValue("v", "key-one"), SignValue("v", "key-two"))
}

func TestUnsignValue_RoundTrip(t *testing.T) {
	// JWTs contain dots themselves; only the last one separates the signature.
	original := "header.payload.signature"

	value, ok := UnsignValue(SignValue(original, testCookieSecret), testCookieSecret)

	require.True(t, ok)
	assert.Equal(t, original, value)
}

func TestUnsignValue_Rejects(t *testing.T) {
	valid := SignValue("value", testCookieSecret)

	tests := []struct {
		name   string
		signed string
		secret string
	}{
		{"no signature separator", "value", testCookieSecret},
		{"tampered value", "other" + valid[len("value"):], testCookieSecret},
		{"tampered signature", valid + "x", testCookieSecret},
		{"wrong secret", valid, "another-secret"},
		{"empty", "", testCookieSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := UnsignValue(tt.signed, tt.secret)
			assert.False(t, ok)
			assert.Empty(t, value)
		})
	}
}
