package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	encrypt "github.com/prolifik1992/discourse-encrypt"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Activate encryption on this device with your account passphrase",
	Long: `Unwraps the account's stored private key with the account passphrase
and installs it on this device.

A paper key cannot be used here: it unwraps the identity file written by
'discourse-encrypt paperkey', not the server-side envelope. To recover
with a paper key, copy that file to this device and run
'discourse-encrypt import-identity'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		passphrase, err := promptPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		s, cleanup := startSpinner("Activating this device...")
		defer cleanup()

		if err := client.ActivateDevice(cmd.Context(), passphrase); err != nil {
			switch {
			case errors.Is(err, encrypt.ErrNotEnabled):
				s.FinalMSG = color.RedString("✗") + " Encryption has never been enabled on this account\n" +
					color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt enable") + " first"
				return nil
			case errors.Is(err, encrypt.ErrPassphraseInvalid):
				s.FinalMSG = color.RedString("✗") + " Wrong passphrase; your key data is intact, try again\n" +
					color.CyanString("→") + " Recovering with a paper key? Use " + color.YellowString("discourse-encrypt import-identity") + " with its identity file"
				return nil
			}
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " This device is now active"
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Remove the usable key pair from this device",
	Long: `Removes the private key from this device and drops all cached topic
keys. The account stays enabled; the device can be re-activated later
with the account passphrase, or with a paper key's identity file via
'discourse-encrypt import-identity'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		s, cleanup := startSpinner("Deactivating this device...")
		defer cleanup()

		if err := client.DeactivateDevice(cmd.Context()); err != nil {
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " Device deactivated; account keys are untouched"
		return nil
	},
}
