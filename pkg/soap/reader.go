package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrMalformedEnvelope indicates the request body is not a well-formed
// XML document. Callers must treat this as "no credentials, no action".
var ErrMalformedEnvelope = errors.New("malformed SOAP envelope")

// Token is a WS-Security UsernameToken as presented by the client.
// All values are the raw text content of the respective elements.
type Token struct {
	Username     string
	Password     string
	PasswordType string // Type attribute of the Password element
	Nonce        string // base64, may be empty
	Created      string // wsu:Created timestamp, may be empty
}

// Action is the single child element of the SOAP body. The element is
// passed through opaquely so handlers can read action parameters.
type Action struct {
	Name      string // local name of the element
	Namespace string // resolved namespace URI of the element
	Element   *etree.Element
}

// Request is the parsed view of an inbound envelope. Token and Action
// are nil when the corresponding part is absent from the document;
// a malformed document never produces a Request at all.
type Request struct {
	Token  *Token
	Action *Action
}

// ParseRequest extracts the security credentials and the requested
// action from an envelope. Elements are matched by namespace URI and
// local name, never by prefix.
func ParseRequest(data []byte) (*Request, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrMalformedEnvelope
	}

	req := &Request{}

	if sec := FindElement(root, NsWSSE, "Security"); sec != nil {
		req.Token = parseUsernameToken(sec)
	}

	if body := FindElement(root, NsSOAPEnv, "Body"); body != nil {
		if children := body.ChildElements(); len(children) > 0 {
			child := children[0]
			req.Action = &Action{
				Name:      child.Tag,
				Namespace: child.NamespaceURI(),
				Element:   child,
			}
		}
	}

	return req, nil
}

// parseUsernameToken reads the UsernameToken out of a Security header.
// Returns nil unless both a username and a password are present.
// Created is bound to the WSU namespace, not the token's own.
func parseUsernameToken(sec *etree.Element) *Token {
	ut := FindElement(sec, NsWSSE, "UsernameToken")
	if ut == nil {
		return nil
	}

	tok := &Token{}
	if e := FindElement(ut, NsWSSE, "Username"); e != nil {
		tok.Username = strings.TrimSpace(e.Text())
	}
	if e := FindElement(ut, NsWSSE, "Password"); e != nil {
		tok.Password = strings.TrimSpace(e.Text())
		tok.PasswordType = e.SelectAttrValue("Type", "")
	} else {
		return nil
	}
	if tok.Username == "" {
		return nil
	}
	if e := FindElement(ut, NsWSSE, "Nonce"); e != nil {
		tok.Nonce = strings.TrimSpace(e.Text())
	}
	if e := FindElement(ut, NsWSU, "Created"); e != nil {
		tok.Created = strings.TrimSpace(e.Text())
	}
	return tok
}

// FindElement returns the first element in document order whose
// resolved namespace URI and local name match, searching root and its
// descendants. Prefixes are irrelevant to the match.
func FindElement(root *etree.Element, ns, local string) *etree.Element {
	if root.Tag == local && root.NamespaceURI() == ns {
		return root
	}
	for _, child := range root.ChildElements() {
		if m := FindElement(child, ns, local); m != nil {
			return m
		}
	}
	return nil
}
