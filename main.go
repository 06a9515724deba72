package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the intake service when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ysfinancials",
	Short: "YS Financials inquiry intake service",
	Long: `ysfinancials accepts contact-form inquiries from the YS Financials website.

It checks the request origin against an allow-list, limits each client IP to a
fixed number of requests per window, validates name, email and message, and
stores each valid inquiry once.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

//	@title			YS Financials Inquiry API
//	@version		1.0
//	@description	Contact form intake for the YS Financials website.
//	@BasePath		/
func main() {
	rootCmd.AddCommand(serveCmd, pingCmd, submitCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
