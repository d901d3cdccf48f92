// onvifsim is a simulated ONVIF device server with WS-Security
// UsernameToken authentication, plus a digest calculator for building
// credentials by hand.
package main

import "github.com/jesperperl/onvif-test-run/cmd/onvifsim/cmd"

func main() {
	cmd.Execute()
}
