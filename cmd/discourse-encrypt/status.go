package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the encryption status of this account and device",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		s, cleanup := startSpinner("Checking encryption status...")
		defer cleanup()

		status, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}

		s.FinalMSG = statusLine(status)
		return nil
	},
}
