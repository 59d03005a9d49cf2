package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "registration",
	Short: "Conference registration service",
	Long:  "A registration service for conference attendees: intake forms, Stripe checkout, payment webhooks, invoices, and visa support requests.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
