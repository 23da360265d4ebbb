package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	encrypt "github.com/prolifik1992/discourse-encrypt"
)

var paperKeyOutput string

func init() {
	paperKeyCmd.Flags().StringVarP(&paperKeyOutput, "output", "o", "identity.json", "file to write the paper-key-wrapped identity to")
}

var paperKeyCmd = &cobra.Command{
	Use:   "paperkey",
	Short: "Generate a recovery paper key and its identity file",
	Long: `Generates a high-entropy paper key, prints it once, and writes the
identity wrapped under it to the --output file. The two are a pair:
the paper key unwraps only that file, not the passphrase envelope on
the server. Write the key down, keep the file, and recover any device
with 'discourse-encrypt import-identity'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		s, cleanup := startSpinner("Generating paper key...")

		paperKey, _, err := client.PaperKey(cmd.Context())
		if err != nil {
			cleanup()
			if errors.Is(err, encrypt.ErrDeviceNotActive) {
				color.Red("✗ This device holds no usable key; activate it first")
				return nil
			}
			return err
		}

		// The paper key is worthless without its wrapped identity, so
		// writing the file is not optional.
		if err := client.ExportIdentityToFile(cmd.Context(), paperKeyOutput, paperKey); err != nil {
			cleanup()
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " Paper key generated\n"
		cleanup()

		fmt.Println()
		color.Cyan("    %s", paperKey)
		fmt.Println()
		color.Yellow("Write this down and store it offline. It is not shown again.")
		fmt.Println("Wrapped identity written to: " + color.YellowString(paperKeyOutput))
		fmt.Println("Recover a device with: " + color.YellowString("discourse-encrypt import-identity -i "+paperKeyOutput))
		return nil
	},
}
