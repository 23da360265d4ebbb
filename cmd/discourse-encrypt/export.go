package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	encrypt "github.com/prolifik1992/discourse-encrypt"
)

var (
	exportOutput string
	importInput  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "identity.json", "file to write the wrapped identity to")
	importCmd.Flags().StringVarP(&importInput, "input", "i", "identity.json", "file holding a wrapped identity")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export this device's identity to a passphrase-protected file",
	Long: `Writes a passphrase-wrapped copy of the identity key pair to a file
for transfer to another device. The file is useless without the
passphrase chosen here.`,
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

		s, cleanup := startSpinner("Exporting identity...")
		defer cleanup()

		if err := client.ExportIdentityToFile(cmd.Context(), exportOutput, passphrase); err != nil {
			if errors.Is(err, encrypt.ErrDeviceNotActive) {
				s.FinalMSG = color.RedString("✗") + " This device holds no usable key; activate it first"
				return nil
			}
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " Identity written to " + color.YellowString(exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import-identity",
	Short: "Activate this device from an exported identity file",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		passphrase, err := promptPassphrase("Passphrase or paper key: ")
		if err != nil {
			return err
		}

		s, cleanup := startSpinner("Importing identity...")
		defer cleanup()

		if err := client.ImportIdentityFromFile(cmd.Context(), importInput, passphrase); err != nil {
			switch {
			case errors.Is(err, encrypt.ErrPassphraseInvalid):
				s.FinalMSG = color.RedString("✗") + " Wrong passphrase; the file is intact, try again"
				return nil
			case errors.Is(err, encrypt.ErrKeyMismatch):
				s.FinalMSG = color.RedString("✗") + " This identity does not match the account's current keys"
				return nil
			case errors.Is(err, encrypt.ErrInvalidImportData):
				s.FinalMSG = color.RedString("✗") + " The file is not a valid identity export"
				return nil
			}
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " This device is now active"
		return nil
	},
}
