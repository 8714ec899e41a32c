// Package creds sources login credentials from the environment or the OS
// keyring. Credentials are injected configuration; they are never embedded
// in source.
package creds

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name used for keyring storage.
	KeyringService = "prospect-cli"

	usernameKey = "username"
	passwordKey = "password"

	envUsername = "PROSPECT_USERNAME"
	envPassword = "PROSPECT_PASSWORD"
)

// Credentials holds one username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Load resolves credentials: environment variables win, then the OS keyring.
// A nil result with nil error means no credentials are configured; callers
// skip the login step entirely in that case.
func Load() (*Credentials, error) {
	user := os.Getenv(envUsername)
	pass := os.Getenv(envPassword)
	if user != "" && pass != "" {
		return &Credentials{Username: user, Password: pass}, nil
	}

	user, err := keyring.Get(KeyringService, usernameKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}
	pass, err = keyring.Get(KeyringService, passwordKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	return &Credentials{Username: user, Password: pass}, nil
}

// Save stores credentials in the OS keyring.
func Save(c Credentials) error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("username and password are both required")
	}
	if err := keyring.Set(KeyringService, usernameKey, c.Username); err != nil {
		return fmt.Errorf("failed to save username: %w", err)
	}
	if err := keyring.Set(KeyringService, passwordKey, c.Password); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

// Delete removes stored credentials from the OS keyring.
func Delete() error {
	for _, key := range []string{usernameKey, passwordKey} {
		if err := keyring.Delete(KeyringService, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
