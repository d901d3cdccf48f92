package auth

import (
	"log/slog"
	"testing"
	"time"

	"github.com/jesperperl/onvif-test-run/internal/config"
	"github.com/jesperperl/onvif-test-run/pkg/soap"
	"github.com/jesperperl/onvif-test-run/pkg/wsse"
)

var testUsers = []config.User{
	{Name: "admin", Password: "admin123", Role: "Administrator"},
	{Name: "user", Password: "user123", Role: "User"},
}

const testNonce = "MTIzNDU2Nzg5MDEyMzQ1Ng==" // base64 of 16 fixed bytes

func testAuthenticator(now time.Time) *Authenticator {
	a := NewAuthenticator(NewStore(testUsers), slog.Default())
	return a.WithClock(func() time.Time { return now })
}

func digestToken(username, secret, nonce, created string) *soap.Token {
	digest, err := wsse.ComputeDigestB64(nonce, created, secret)
	if err != nil {
		panic(err)
	}
	return &soap.Token{
		Username:     username,
		Password:     digest,
		PasswordType: soap.PasswordDigestType,
		Nonce:        nonce,
		Created:      created,
	}
}

func TestAuthenticate_Digest(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	created := wsse.Created(now)

	tests := []struct {
		name string
		tok  *soap.Token
		want bool
	}{
		{
			name: "valid digest",
			tok:  digestToken("admin", "admin123", testNonce, created),
			want: true,
		},
		{
			// Digest math alone must never authenticate an
			// identifier that is not in the store.
			name: "unknown identifier with self-consistent digest",
			tok:  digestToken("intruder", "guessed", testNonce, created),
			want: false,
		},
		{
			name: "wrong secret",
			tok:  digestToken("admin", "wrong", testNonce, created),
			want: false,
		},
		{
			name: "stale created flips the decision",
			tok:  digestToken("admin", "admin123", testNonce, wsse.Created(now.Add(-301*time.Second))),
			want: false,
		},
		{
			name: "future created beyond window",
			tok:  digestToken("admin", "admin123", testNonce, wsse.Created(now.Add(301*time.Second))),
			want: false,
		},
		{
			name: "created exactly at the window edge",
			tok:  digestToken("admin", "admin123", testNonce, wsse.Created(now.Add(-300*time.Second))),
			want: true,
		},
		{
			name: "digest mode missing nonce",
			tok: &soap.Token{
				Username:     "admin",
				Password:     "5E/mdeao6Kt6TRP9GI/AdKJgc6I=",
				PasswordType: soap.PasswordDigestType,
				Created:      created,
			},
			want: false,
		},
		{
			name: "digest mode missing created",
			tok: &soap.Token{
				Username:     "admin",
				Password:     "5E/mdeao6Kt6TRP9GI/AdKJgc6I=",
				PasswordType: soap.PasswordDigestType,
				Nonce:        testNonce,
			},
			want: false,
		},
		{
			name: "undecodable nonce rejects instead of crashing",
			tok: &soap.Token{
				Username:     "admin",
				Password:     "5E/mdeao6Kt6TRP9GI/AdKJgc6I=",
				PasswordType: soap.PasswordDigestType,
				Nonce:        "!!!not-base64!!!",
				Created:      created,
			},
			want: false,
		},
	}

	a := testAuthenticator(now)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := a.Authenticate(tt.tok)
			if d.Accepted != tt.want {
				t.Errorf("Accepted = %v, want %v", d.Accepted, tt.want)
			}
			if tt.want && d.Principal != tt.tok.Username {
				t.Errorf("Principal = %q, want %q", d.Principal, tt.tok.Username)
			}
			if !tt.want && d.Principal != "" {
				t.Errorf("rejected decision leaked principal %q", d.Principal)
			}
		})
	}
}

func TestAuthenticate_PlainText(t *testing.T) {
	a := testAuthenticator(time.Now())

	tests := []struct {
		name string
		tok  *soap.Token
		want bool
	}{
		{
			name: "exact match",
			tok:  &soap.Token{Username: "user", Password: "user123", PasswordType: soap.PasswordTextType},
			want: true,
		},
		{
			// Plaintext mode ignores nonce and created entirely.
			name: "match with stray nonce and stale created",
			tok: &soap.Token{
				Username:     "user",
				Password:     "user123",
				PasswordType: soap.PasswordTextType,
				Nonce:        testNonce,
				Created:      "2020-01-01T00:00:00Z",
			},
			want: true,
		},
		{
			name: "empty type attribute treated as plaintext",
			tok:  &soap.Token{Username: "user", Password: "user123"},
			want: true,
		},
		{
			name: "wrong password",
			tok:  &soap.Token{Username: "user", Password: "nope", PasswordType: soap.PasswordTextType},
			want: false,
		},
		{
			name: "unknown user",
			tok:  &soap.Token{Username: "ghost", Password: "user123", PasswordType: soap.PasswordTextType},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := a.Authenticate(tt.tok); d.Accepted != tt.want {
				t.Errorf("Accepted = %v, want %v", d.Accepted, tt.want)
			}
		})
	}
}

func TestAuthenticate_EdgeModes(t *testing.T) {
	a := testAuthenticator(time.Now())

	if d := a.Authenticate(nil); d.Accepted {
		t.Error("nil token must be rejected")
	}

	unknownMode := &soap.Token{
		Username:     "admin",
		Password:     "admin123",
		PasswordType: "http://example.com/ns#X509Token",
	}
	if d := a.Authenticate(unknownMode); d.Accepted {
		t.Error("unknown credential mode must be rejected")
	}
}

func TestStore_Lookup(t *testing.T) {
	s := NewStore(testUsers)

	p, ok := s.Lookup("admin")
	if !ok {
		t.Fatal("expected admin to resolve")
	}
	if p.Role != RoleAdministrator {
		t.Errorf("Role = %q, want %q", p.Role, RoleAdministrator)
	}

	if _, ok := s.Lookup("nobody"); ok {
		t.Error("unexpected principal resolved")
	}

	// Empty role defaults to User.
	s = NewStore([]config.User{{Name: "x", Password: "y"}})
	p, _ = s.Lookup("x")
	if p.Role != RoleUser {
		t.Errorf("Role = %q, want %q", p.Role, RoleUser)
	}
}
