package config

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// MaybePromptPassword asks for the database password on the terminal
// when none was configured. Non-interactive runs (cron) skip the
// prompt and connect with an empty password, which the server may still
// accept via trust or pgpass.
func (c *Config) MaybePromptPassword() error {
	if c.DBPassword != "" {
		return nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	fmt.Fprintf(os.Stderr, "Password for user %s: ", c.DBUser)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	c.DBPassword = string(pw)
	return nil
}
