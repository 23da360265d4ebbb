package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the account's encryption keys",
	Long: `Deletes the account's identity key pair from the server and the key
material on this device. Every encrypted message addressed to the old
identity becomes permanently undecipherable. There is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if !resetForce {
			color.Yellow("This permanently destroys your identity key pair.")
			color.Yellow("All encrypted messages sent to it become unreadable forever.")
			os.Stderr.WriteString("Type 'reset' to continue: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "reset" {
				color.Red("✗ Aborted")
				return nil
			}
		}

		s, cleanup := startSpinner("Deleting account keys...")
		defer cleanup()

		if err := client.ResetKeys(cmd.Context()); err != nil {
			return err
		}

		s.FinalMSG = color.GreenString("✓") + " Account keys deleted; encryption is now disabled\n" +
			color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt enable") + " to start over with a fresh identity"
		return nil
	},
}
