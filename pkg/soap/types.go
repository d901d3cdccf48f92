// Package soap provides the SOAP 1.2 envelope model for the ONVIF
// simulator: namespace constants, request parsing, and response/fault
// serialization.
//
// Parsing is namespace-aware: elements are located by (namespace URI,
// local name) pairs so that clients may bind the standard security and
// addressing namespaces to arbitrary prefixes.
package soap

import "encoding/xml"

// Namespace constants for SOAP 1.2 and the ONVIF service WSDLs.
const (
	NsSOAPEnv = "http://www.w3.org/2003/05/soap-envelope"
	NsWSSE    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	NsWSU     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	NsWSA     = "http://www.w3.org/2005/08/addressing"

	NsDevice = "http://www.onvif.org/ver10/device/wsdl"
	NsMedia  = "http://www.onvif.org/ver10/media/wsdl"
	NsPTZ    = "http://www.onvif.org/ver20/ptz/wsdl"
	NsSchema = "http://www.onvif.org/ver10/schema"
)

// UsernameToken profile constants.
const (
	PasswordDigestType  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	PasswordTextType    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
	Base64BinaryEncType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

// Envelope represents a SOAP 1.2 envelope for outbound requests.
type Envelope struct {
	XMLName xml.Name `xml:"http://www.w3.org/2003/05/soap-envelope Envelope"`
	Header  *Header  `xml:"Header,omitempty"`
	Body    Body     `xml:"Body"`
}

// Header carries the WS-Security and WS-Addressing headers.
type Header struct {
	Security  *Security `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd Security,omitempty"`
	MessageID string    `xml:"http://www.w3.org/2005/08/addressing MessageID,omitempty"`
	Action    string    `xml:"http://www.w3.org/2005/08/addressing Action,omitempty"`
}

// Body carries the single action element as raw inner XML.
type Body struct {
	XMLName xml.Name `xml:"http://www.w3.org/2003/05/soap-envelope Body"`
	Inner   []byte   `xml:",innerxml"`
}

// Security represents the WS-Security header containing a UsernameToken.
type Security struct {
	XMLName        xml.Name       `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd Security"`
	MustUnderstand string         `xml:"http://www.w3.org/2003/05/soap-envelope mustUnderstand,attr,omitempty"`
	UsernameToken  *UsernameToken `xml:"UsernameToken,omitempty"`
}

// UsernameToken is the wire form of a WS-Security username token.
// Created lives in the WSU namespace, not the token's own.
type UsernameToken struct {
	XMLName  xml.Name  `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd UsernameToken"`
	Username string    `xml:"Username"`
	Password *Password `xml:"Password,omitempty"`
	Nonce    *Nonce    `xml:"Nonce,omitempty"`
	Created  string    `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd Created,omitempty"`
}

// Password carries the password value and its profile Type attribute.
type Password struct {
	Type  string `xml:"Type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Nonce carries the base64-encoded nonce.
type Nonce struct {
	EncodingType string `xml:"EncodingType,attr,omitempty"`
	Value        string `xml:",chardata"`
}
