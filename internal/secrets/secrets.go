// Package secrets stores the gist token in the OS keychain.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "internship-watcher"

	gistAccount = "gist-token"
)

// GetGistToken looks in the keychain first, then the GIST_TOKEN env var
// (the env path is what CI and headless boxes use).
func GetGistToken() (string, error) {
	if tok, err := keyring.Get(KeyringService, gistAccount); err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(os.Getenv("GIST_TOKEN")); tok != "" {
		return tok, nil
	}
	return "", errors.New("gist token not found (set it in the keychain or via GIST_TOKEN)")
}

func SetGistToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, gistAccount, token)
}

func DeleteGistToken() error {
	return keyring.Delete(KeyringService, gistAccount)
}
