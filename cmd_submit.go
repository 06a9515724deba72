package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"YSFinancials/pkg/client"
)

var form client.Form
var endpoint string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send one inquiry to a running service and print the reply",
	RunE:  runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&form.Name, "name", "", "Sender name")
	submitCmd.Flags().StringVar(&form.Email, "email", "", "Sender email")
	submitCmd.Flags().StringVar(&form.Message, "message", "", "Inquiry text")
	submitCmd.Flags().StringVar(&form.Phone, "phone", "", "Sender phone (optional)")
	submitCmd.Flags().StringVar(&endpoint, "endpoint", client.DefaultEndpoint, "Contact endpoint URL")
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	res, err := client.New(endpoint).Submit(cmd.Context(), form)
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("submission rejected with status %d", res.Status)
	}
	return nil
}
