package wsse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesperperl/onvif-test-run/pkg/soap"
)

func TestNewRequest_DigestRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	data, err := NewRequest(
		WithDigestToken("admin", "admin123", now),
		WithMessageID(),
		WithAction(soap.NsDevice, "GetDeviceInformation"),
	).Build()
	require.NoError(t, err)

	req, err := soap.ParseRequest(data)
	require.NoError(t, err)

	require.NotNil(t, req.Token)
	assert.Equal(t, "admin", req.Token.Username)
	assert.Equal(t, soap.PasswordDigestType, req.Token.PasswordType)
	assert.NotEmpty(t, req.Token.Nonce)
	assert.Equal(t, Created(now), req.Token.Created)

	// The embedded digest must recompute from the embedded nonce.
	expected, err := ComputeDigestB64(req.Token.Nonce, req.Token.Created, "admin123")
	require.NoError(t, err)
	assert.Equal(t, expected, req.Token.Password)

	require.NotNil(t, req.Action)
	assert.Equal(t, "GetDeviceInformation", req.Action.Name)
	assert.Equal(t, soap.NsDevice, req.Action.Namespace)
}

func TestNewRequest_PresetDigestToken(t *testing.T) {
	data, err := NewRequest(
		WithPresetDigestToken("admin", "admin123", testNonceB64, testCreated),
		WithAction(soap.NsDevice, "GetSystemDateAndTime"),
	).Build()
	require.NoError(t, err)

	req, err := soap.ParseRequest(data)
	require.NoError(t, err)
	require.NotNil(t, req.Token)
	assert.Equal(t, "5E/mdeao6Kt6TRP9GI/AdKJgc6I=", req.Token.Password)
	assert.Equal(t, testNonceB64, req.Token.Nonce)
	assert.Equal(t, testCreated, req.Token.Created)
}

func TestNewRequest_PlainTextToken(t *testing.T) {
	data, err := NewRequest(
		WithPlainTextToken("user", "user123"),
		WithAction(soap.NsMedia, "GetProfiles"),
	).Build()
	require.NoError(t, err)

	req, err := soap.ParseRequest(data)
	require.NoError(t, err)
	require.NotNil(t, req.Token)
	assert.Equal(t, "user", req.Token.Username)
	assert.Equal(t, "user123", req.Token.Password)
	assert.Equal(t, soap.PasswordTextType, req.Token.PasswordType)
	assert.Empty(t, req.Token.Nonce)
	assert.Empty(t, req.Token.Created)
}

func TestNewRequest_ActionParams(t *testing.T) {
	data, err := NewRequest(
		WithPlainTextToken("user", "user123"),
		WithAction(soap.NsMedia, "GetStreamUri", Param{Name: "ProfileToken", Value: "Profile_2"}),
	).Build()
	require.NoError(t, err)

	req, err := soap.ParseRequest(data)
	require.NoError(t, err)
	require.NotNil(t, req.Action)
	assert.Equal(t, "GetStreamUri", req.Action.Name)

	// Parameter children inherit the action's namespace.
	tokenElem := soap.FindElement(req.Action.Element, soap.NsMedia, "ProfileToken")
	require.NotNil(t, tokenElem)
	assert.Equal(t, "Profile_2", strings.TrimSpace(tokenElem.Text()))
}

func TestNewRequest_MalformedNonceSurfaces(t *testing.T) {
	_, err := NewRequest(
		WithPresetDigestToken("admin", "admin123", "***", testCreated),
		WithAction(soap.NsDevice, "GetDeviceInformation"),
	).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedCredential)
}
