package config

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name the database password is stored under
const KeyringService = "activities-cli"

// keyringAvailable reports whether the OS keyring should be consulted.
// CI and Codespaces have no usable keyring.
func keyringAvailable() bool {
	return os.Getenv("CODESPACES") == "" && os.Getenv("CI") == ""
}

// LookupPassword returns the stored password for a database user, or "" when
// none is stored
func LookupPassword(user string) (string, error) {
	if !keyringAvailable() {
		return "", nil
	}
	password, err := keyring.Get(KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return password, err
}

// StorePassword saves the database password for user in the OS keyring
func StorePassword(user, password string) error {
	return keyring.Set(KeyringService, user, password)
}

// DeletePassword removes the stored password for user. Deleting a missing
// entry is not an error.
func DeletePassword(user string) error {
	err := keyring.Delete(KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
