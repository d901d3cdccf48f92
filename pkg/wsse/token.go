package wsse

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// Mode classifies how a UsernameToken's password is presented.
type Mode int

const (
	// ModeUnknown is any Type URI that is neither digest nor text.
	ModeUnknown Mode = iota
	// ModeDigest is the PasswordDigest profile; the token must also
	// carry a nonce and a Created timestamp.
	ModeDigest
	// ModePlainText is the PasswordText profile. An absent or empty
	// Type attribute is treated as plaintext, the profile's default.
	ModePlainText
)

// ClassifyPasswordType maps a Password element's Type attribute to a
// credential mode. Matching is by substring, the way compliant servers
// tolerate the full profile URI or a bare fragment.
func ClassifyPasswordType(passwordType string) Mode {
	switch {
	case strings.Contains(passwordType, "PasswordDigest"):
		return ModeDigest
	case strings.Contains(passwordType, "PasswordText"), passwordType == "":
		return ModePlainText
	default:
		return ModeUnknown
	}
}

// NonceSize is the number of random bytes in a generated nonce.
const NonceSize = 16

// GenerateNonce returns a fresh random nonce, base64-encoded for the
// wire.
func GenerateNonce() (string, error) {
	raw := make([]byte, NonceSize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
