// Package wsse implements the WS-Security UsernameToken primitives
// used by the ONVIF simulator: password digest computation, timestamp
// freshness validation, nonce generation, and a request builder for
// clients.
//
// The digest algorithm is the UsernameToken profile's PasswordDigest:
//
//	Digest = Base64( SHA-1( Base64Decode(Nonce) + Created + Password ) )
//
// SHA-1 is mandated by the profile; this package does not attempt to
// upgrade it.
package wsse

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedCredential indicates a credential that cannot be
// evaluated, such as a nonce that is not valid base64. Callers must
// treat it as an authentication rejection, never as a server error.
var ErrMalformedCredential = errors.New("malformed credential")

// ComputeDigest computes the password digest over the raw nonce bytes,
// the timestamp string exactly as presented, and the shared secret.
// It is a pure function: identical inputs always produce identical
// output.
func ComputeDigest(nonce []byte, created, secret string) string {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(secret))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ComputeDigestB64 is ComputeDigest for a base64-encoded nonce as it
// appears on the wire. A nonce that does not decode yields
// ErrMalformedCredential.
func ComputeDigestB64(nonceB64, created, secret string) (string, error) {
	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return "", fmt.Errorf("%w: decoding nonce: %v", ErrMalformedCredential, err)
	}
	return ComputeDigest(nonce, created, secret), nil
}
