/*
Package onviftestrun implements a simulated ONVIF device server for
testing camera-control clients.

# Overview

The server exposes the three ONVIF service endpoints a typical IP
camera offers (Device management, Media, and PTZ) over SOAP 1.2, and
protects every operation with WS-Security UsernameToken authentication
in both PasswordDigest and PasswordText modes. Responses are static or
lightly parameterized, suitable for exercising client authentication
and dispatch logic without real hardware.

# Specifications Implemented

  - ONVIF Core Specification (UsernameToken authentication)
  - Web Services Security UsernameToken Profile 1.0:
    https://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0.pdf
  - SOAP Version 1.2: https://www.w3.org/TR/soap12/

# Package Structure

	github.com/jesperperl/onvif-test-run/pkg/soap      - SOAP envelope model, reader, writer
	github.com/jesperperl/onvif-test-run/pkg/wsse      - UsernameToken digest, freshness, request builder
	github.com/jesperperl/onvif-test-run/internal/auth    - Credential store and authenticator
	github.com/jesperperl/onvif-test-run/internal/service - Action dispatch and response generators
	github.com/jesperperl/onvif-test-run/internal/server  - HTTP server
	github.com/jesperperl/onvif-test-run/internal/config  - YAML configuration

# Quick Start

Start the server with built-in defaults:

	onvifsim serve

Then send a UsernameToken-authenticated request built with
[github.com/jesperperl/onvif-test-run/pkg/wsse.NewRequest], or compute
a digest by hand with:

	onvifsim digest
*/
package onviftestrun
