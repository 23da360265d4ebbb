package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"

	encrypt "github.com/prolifik1992/discourse-encrypt"
)

// newClient builds the SDK client from the resolved flags/environment.
func newClient() (*encrypt.Client, error) {
	client, err := encrypt.New(apiKey, encrypt.WithBaseURL(forumURL))
	if err != nil {
		if errors.Is(err, encrypt.ErrMissingAPIKey) {
			return nil, errors.New("no user API key: pass --api-key or set DISCOURSE_API_KEY")
		}
		if errors.Is(err, encrypt.ErrMissingBaseURL) {
			return nil, errors.New("no forum URL: pass --url or set DISCOURSE_URL")
		}
		return nil, err
	}
	return client, nil
}

// startSpinner shows a progress spinner unless verbose output is on.
// The returned cleanup stops the spinner and prints its FinalMSG.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if !verbose {
		s.Start()
	}

	cleanup := func() {
		s.Stop()
		if s.FinalMSG != "" {
			fmt.Print(s.FinalMSG)
			if s.FinalMSG[len(s.FinalMSG)-1] != '\n' {
				fmt.Println()
			}
		}
	}
	return s, cleanup
}

// promptPassphrase reads a passphrase from the terminal without echo.
func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(raw), nil
}

// promptNewPassphrase reads and confirms a fresh passphrase.
func promptNewPassphrase() (string, error) {
	pass, err := promptPassphrase("Passphrase: ")
	if err != nil {
		return "", err
	}
	if pass == "" {
		return "", errors.New("passphrase must not be empty")
	}
	confirm, err := promptPassphrase("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}

func statusLine(s encrypt.Status) string {
	switch s {
	case encrypt.StatusActive:
		return color.GreenString("✓") + " Encryption is " + color.GreenString("active") + " on this device"
	case encrypt.StatusEnabled:
		return color.YellowString("!") + " Encryption is " + color.YellowString("enabled") + " on the account but this device holds no usable key\n" +
			color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt activate") + " with your passphrase, or " + color.YellowString("discourse-encrypt import-identity") + " with a paper key's identity file"
	default:
		return color.RedString("✗") + " Encryption is " + color.RedString("disabled") + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("discourse-encrypt enable") + " to generate keys"
	}
}
