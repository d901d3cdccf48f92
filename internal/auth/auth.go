// Package auth provides WS-Security UsernameToken authentication for
// the ONVIF simulator.
//
// The decision is strictly binary: a request either proves identity or
// it does not. The individual failure modes (unknown principal, stale
// timestamp, digest mismatch, malformed credential) are kept as
// sentinel errors for logging and tests, but are never surfaced to the
// client, to avoid acting as an oracle.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jesperperl/onvif-test-run/internal/config"
	"github.com/jesperperl/onvif-test-run/pkg/soap"
	"github.com/jesperperl/onvif-test-run/pkg/wsse"
)

// Sentinel errors for authentication failures. All of them collapse to
// a single rejected [Decision]; they exist so logs and tests can name
// the failing check.
var (
	// ErrNoCredentials indicates the request carried no username token.
	ErrNoCredentials = errors.New("no credentials presented")

	// ErrUnknownPrincipal indicates the identifier is not in the store.
	ErrUnknownPrincipal = errors.New("unknown principal")

	// ErrStaleTimestamp indicates the Created timestamp is outside the
	// freshness window, in either direction.
	ErrStaleTimestamp = errors.New("stale timestamp")

	// ErrDigestMismatch indicates the presented digest does not equal
	// the recomputed one.
	ErrDigestMismatch = errors.New("password digest mismatch")

	// ErrPasswordMismatch indicates a plaintext password mismatch.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrUnsupportedMode indicates a Password Type URI that is neither
	// digest nor plaintext.
	ErrUnsupportedMode = errors.New("unsupported credential mode")
)

// Role is a principal's authorization level.
type Role string

// Roles known to the credential store.
const (
	RoleAdministrator Role = "Administrator"
	RoleUser          Role = "User"
)

// Principal is a credential store entry. Immutable for the process
// lifetime.
type Principal struct {
	Name   string
	Secret string
	Role   Role
}

// Store is the read-only credential store, built once at startup and
// safe for concurrent lookups.
type Store struct {
	principals map[string]Principal
}

// NewStore builds a credential store from configuration. An empty role
// defaults to User.
func NewStore(users []config.User) *Store {
	s := &Store{principals: make(map[string]Principal, len(users))}
	for _, u := range users {
		role := Role(u.Role)
		if role == "" {
			role = RoleUser
		}
		s.principals[u.Name] = Principal{Name: u.Name, Secret: u.Password, Role: role}
	}
	return s
}

// Lookup resolves a principal by identifier.
func (s *Store) Lookup(name string) (Principal, bool) {
	p, ok := s.principals[name]
	return p, ok
}

// Decision is the outcome of authenticating one request.
type Decision struct {
	Accepted  bool
	Principal string
}

// Authenticator validates presented credentials against the store.
// The clock is injected and read once per request at validation time.
type Authenticator struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthenticator creates an authenticator over the given store.
func NewAuthenticator(store *Store, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the wall-clock source. Intended for tests.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// Authenticate evaluates the presented token and returns a binary
// decision. It never returns an error: every failure mode is a
// rejection.
func (a *Authenticator) Authenticate(tok *soap.Token) Decision {
	principal, err := a.evaluate(tok)
	if err != nil {
		a.logger.Debug("authentication rejected", "error", err)
		return Decision{}
	}
	return Decision{Accepted: true, Principal: principal.Name}
}

// evaluate runs the checks in strict order, short-circuiting on the
// first failure.
func (a *Authenticator) evaluate(tok *soap.Token) (Principal, error) {
	if tok == nil {
		return Principal{}, ErrNoCredentials
	}

	// Unknown identifiers are rejected before any digest math.
	principal, ok := a.store.Lookup(tok.Username)
	if !ok {
		return Principal{}, ErrUnknownPrincipal
	}

	switch wsse.ClassifyPasswordType(tok.PasswordType) {
	case wsse.ModeDigest:
		if tok.Nonce == "" || tok.Created == "" {
			return Principal{}, wsse.ErrMalformedCredential
		}
		if !wsse.IsFresh(tok.Created, a.now()) {
			return Principal{}, ErrStaleTimestamp
		}
		expected, err := wsse.ComputeDigestB64(tok.Nonce, tok.Created, principal.Secret)
		if err != nil {
			return Principal{}, err
		}
		// Plain string compare; the digest is not secret material.
		if tok.Password != expected {
			return Principal{}, ErrDigestMismatch
		}
		return principal, nil

	case wsse.ModePlainText:
		if tok.Password != principal.Secret {
			return Principal{}, ErrPasswordMismatch
		}
		return principal, nil

	default:
		return Principal{}, ErrUnsupportedMode
	}
}
