package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onvifsim",
	Short: "Simulated ONVIF device server",
	Long: `onvifsim simulates an ONVIF camera: Device, Media, and PTZ services
behind WS-Security UsernameToken authentication.

Run 'onvifsim serve' to start the server, or 'onvifsim digest' to
compute a UsernameToken password digest by hand.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
