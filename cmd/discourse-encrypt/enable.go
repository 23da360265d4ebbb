package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	encrypt "github.com/prolifik1992/discourse-encrypt"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Generate an identity key pair and enable encryption for the account",
	Long: `Generates a fresh RSA key pair, wraps the private key under a passphrase
of your choosing, and stores both on your account. This device becomes
active immediately.

If the account already has keys, the command fails; run
'discourse-encrypt reset' first if you really want a new identity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		passphrase, err := promptNewPassphrase()
		if err != nil {
			return err
		}

		s, cleanup := startSpinner("Generating identity key pair...")
		defer cleanup()

		if err := client.EnableEncryption(cmd.Context(), passphrase); err != nil {
			if errors.Is(err, encrypt.ErrDistributionConflict) {
				s.FinalMSG = color.RedString("✗") + " Encryption is already enabled with a different key\n" +
					color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt reset") + " to discard the old identity first"
				return nil
			}
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " Encryption enabled; this device is now active\n" +
			color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt paperkey") + " and store the result somewhere safe"
		return nil
	},
}
