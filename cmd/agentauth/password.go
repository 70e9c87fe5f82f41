package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/agentauth/agentauth/internal/config"
)

// keyringUser is the account name under which the master password is stored
// in the OS keyring; the service name comes from configuration.
const keyringUser = "master-password"

const minPasswordLen = 8

// resolvePassword returns the master password for unlock-needing commands:
// the OS keyring first (when the operator opted in via 'agentauth keyring
// set'), then an interactive prompt.
func resolvePassword(cfg *config.Config) (string, error) {
	if pw, err := keyring.Get(cfg.KeyringService, keyringUser); err == nil && pw != "" {
		return pw, nil
	}
	return promptPassword("Vault password: ")
}

// promptPassword reads a password from the terminal with echo disabled.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for password prompt")
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

// promptNewPassword prompts twice and enforces the minimum length, for
// vault initialization.
func promptNewPassword() (string, error) {
	password, err := promptPassword("Enter master password: ")
	if err != nil {
		return "", err
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	confirm, err := promptPassword("Confirm master password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

// cmdKeyring stores or removes the master password in the OS keyring so
// unattended agent processes can unlock without a prompt.
func cmdKeyring(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: agentauth keyring <set|clear>")
	}

	switch args[0] {
	case "set":
		password, err := promptPassword("Master password to store: ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(password) == "" {
			return errors.New("refusing to store an empty password")
		}
		if err := keyring.Set(cfg.KeyringService, keyringUser, password); err != nil {
			return fmt.Errorf("store password in keyring: %w", err)
		}
		fmt.Printf("Master password stored in OS keyring (service %q)\n", cfg.KeyringService)
		return nil
	case "clear":
		if err := keyring.Delete(cfg.KeyringService, keyringUser); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Println("No password stored in keyring")
				return nil
			}
			return fmt.Errorf("remove password from keyring: %w", err)
		}
		fmt.Println("Master password removed from OS keyring")
		return nil
	default:
		return fmt.Errorf("unknown keyring subcommand %q", args[0])
	}
}
