package auth

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestLoadCredentialsFromEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUsername, "user@wyzinc.pt")
	t.Setenv(EnvPassword, "s3cret")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.Username != "user@wyzinc.pt" || creds.Password != "s3cret" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestLoadCredentialsMissingIsFatal(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	_, err := LoadCredentials()
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err = %v, want ErrNoCredentials", err)
	}
}

func TestLoadCredentialsPartialIsFatal(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUsername, "user@wyzinc.pt")
	t.Setenv(EnvPassword, "")

	if _, err := LoadCredentials(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err = %v, want ErrNoCredentials", err)
	}
}

func TestKeyringFallbackAndClear(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	stored := Credentials{Username: "user@wyzinc.pt", Password: "s3cret"}
	if err := StoreCredentials(stored); err != nil {
		t.Fatalf("StoreCredentials: %v", err)
	}

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds != stored {
		t.Errorf("creds = %+v, want %+v", creds, stored)
	}

	if err := ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	if _, err := LoadCredentials(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err after clear = %v, want ErrNoCredentials", err)
	}

	// Clearing an already empty keyring is fine.
	if err := ClearCredentials(); err != nil {
		t.Errorf("second ClearCredentials: %v", err)
	}
}

func TestEnvOverridesKeyring(t *testing.T) {
	keyring.MockInit()
	if err := StoreCredentials(Credentials{Username: "keyring-user", Password: "keyring-pass"}); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvPassword, "env-pass")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.Username != "env-user" || creds.Password != "env-pass" {
		t.Errorf("creds = %+v, want env values", creds)
	}
}
