package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name credentials are stored under in
	// the OS keyring.
	KeyringService = "mauser-monitor"

	// EnvUsername and EnvPassword are the primary credential source.
	EnvUsername = "MAUSER_USERNAME"
	EnvPassword = "MAUSER_PASSWORD"

	keyringUserKey = "username"
	keyringPassKey = "password"
)

// ErrNoCredentials is the fatal precondition: without an account there is
// nothing useful a run could do, so it aborts before any network call.
var ErrNoCredentials = errors.New(
	"missing credentials: set " + EnvUsername + " and " + EnvPassword +
		" or store them with \"mauser-monitor creds set\"")

// Credentials is the supplier account.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials resolves the supplier account from the environment
// first, then the OS keyring. Callers must check the error before any
// network activity.
func LoadCredentials() (Credentials, error) {
	c := Credentials{
		Username: os.Getenv(EnvUsername),
		Password: os.Getenv(EnvPassword),
	}
	if c.Username == "" {
		if v, err := keyring.Get(KeyringService, keyringUserKey); err == nil {
			c.Username = v
		}
	}
	if c.Password == "" {
		if v, err := keyring.Get(KeyringService, keyringPassKey); err == nil {
			c.Password = v
		}
	}
	if c.Username == "" || c.Password == "" {
		return Credentials{}, ErrNoCredentials
	}
	return c, nil
}

// StoreCredentials saves the account to the OS keyring.
func StoreCredentials(c Credentials) error {
	if err := keyring.Set(KeyringService, keyringUserKey, c.Username); err != nil {
		return fmt.Errorf("store username in keyring: %w", err)
	}
	if err := keyring.Set(KeyringService, keyringPassKey, c.Password); err != nil {
		return fmt.Errorf("store password in keyring: %w", err)
	}
	return nil
}

// ClearCredentials removes the account from the OS keyring. Missing
// entries are not an error.
func ClearCredentials() error {
	for _, key := range []string{keyringUserKey, keyringPassKey} {
		if err := keyring.Delete(KeyringService, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("delete %s from keyring: %w", key, err)
		}
	}
	return nil
}
