package soap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The reader must match elements by namespace URI, not by prefix.
// This request binds every standard namespace to a nonstandard prefix.
const oddPrefixRequest = `<?xml version="1.0" encoding="UTF-8"?>
<x:Envelope xmlns:x="http://www.w3.org/2003/05/soap-envelope"
            xmlns:sec="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
            xmlns:util="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
            xmlns:dev="http://www.onvif.org/ver10/device/wsdl">
  <x:Header>
    <sec:Security x:mustUnderstand="1">
      <sec:UsernameToken>
        <sec:Username>admin</sec:Username>
        <sec:Password Type="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest">c29tZWRpZ2VzdA==</sec:Password>
        <sec:Nonce EncodingType="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary">MTIzNDU2Nzg5MDEyMzQ1Ng==</sec:Nonce>
        <util:Created>2024-01-15T10:30:00.000Z</util:Created>
      </sec:UsernameToken>
    </sec:Security>
  </x:Header>
  <x:Body>
    <dev:GetDeviceInformation/>
  </x:Body>
</x:Envelope>`

// defaultNSRequest uses default namespaces throughout, the way many
// ONVIF clients emit requests.
const defaultNSRequest = `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
    <s:Header>
        <Security s:mustUnderstand="1" xmlns="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd">
            <UsernameToken>
                <Username>tapoperl</Username>
                <Password Type="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText">changeme</Password>
                <Created xmlns="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd">2024-01-15T10:30:00.000Z</Created>
            </UsernameToken>
        </Security>
    </s:Header>
    <s:Body>
        <GetCapabilities xmlns="http://www.onvif.org/ver10/device/wsdl">
            <Category>All</Category>
        </GetCapabilities>
    </s:Body>
</s:Envelope>`

func TestParseRequest_ArbitraryPrefixes(t *testing.T) {
	req, err := ParseRequest([]byte(oddPrefixRequest))
	require.NoError(t, err)

	require.NotNil(t, req.Token)
	assert.Equal(t, "admin", req.Token.Username)
	assert.Equal(t, "c29tZWRpZ2VzdA==", req.Token.Password)
	assert.Equal(t, PasswordDigestType, req.Token.PasswordType)
	assert.Equal(t, "MTIzNDU2Nzg5MDEyMzQ1Ng==", req.Token.Nonce)
	// Created is in the WSU namespace even though it nests inside a
	// WSSE container.
	assert.Equal(t, "2024-01-15T10:30:00.000Z", req.Token.Created)

	require.NotNil(t, req.Action)
	assert.Equal(t, "GetDeviceInformation", req.Action.Name)
	assert.Equal(t, NsDevice, req.Action.Namespace)
}

func TestParseRequest_DefaultNamespaces(t *testing.T) {
	req, err := ParseRequest([]byte(defaultNSRequest))
	require.NoError(t, err)

	require.NotNil(t, req.Token)
	assert.Equal(t, "tapoperl", req.Token.Username)
	assert.Equal(t, "changeme", req.Token.Password)
	assert.Equal(t, PasswordTextType, req.Token.PasswordType)
	assert.Empty(t, req.Token.Nonce)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", req.Token.Created)

	require.NotNil(t, req.Action)
	assert.Equal(t, "GetCapabilities", req.Action.Name)
	assert.Equal(t, NsDevice, req.Action.Namespace)

	// The action element is passed through opaquely with its children.
	cat := FindElement(req.Action.Element, NsDevice, "Category")
	require.NotNil(t, cat)
	assert.Equal(t, "All", strings.TrimSpace(cat.Text()))
}

func TestParseRequest_NoSecurityHeader(t *testing.T) {
	body := `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
  <s:Body><a:GetNodes xmlns:a="http://www.onvif.org/ver20/ptz/wsdl"/></s:Body>
</s:Envelope>`
	req, err := ParseRequest([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, req.Token)
	require.NotNil(t, req.Action)
	assert.Equal(t, "GetNodes", req.Action.Name)
	assert.Equal(t, NsPTZ, req.Action.Namespace)
}

func TestParseRequest_EmptyBody(t *testing.T) {
	body := `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
  <s:Body></s:Body>
</s:Envelope>`
	req, err := ParseRequest([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, req.Token)
	assert.Nil(t, req.Action)
}

func TestParseRequest_TokenWithoutPassword(t *testing.T) {
	body := `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
  xmlns:w="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd">
  <s:Header><w:Security><w:UsernameToken><w:Username>admin</w:Username></w:UsernameToken></w:Security></s:Header>
  <s:Body/>
</s:Envelope>`
	req, err := ParseRequest([]byte(body))
	require.NoError(t, err)
	// A token missing its password is treated as absent credentials.
	assert.Nil(t, req.Token)
}

func TestParseRequest_Malformed(t *testing.T) {
	for _, data := range []string{
		"not xml at all",
		"<unclosed>",
		"<a><b></a></b>",
	} {
		_, err := ParseRequest([]byte(data))
		assert.ErrorIs(t, err, ErrMalformedEnvelope, "input=%q", data)
	}
}
