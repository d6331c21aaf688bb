package models

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore keeps the API token in a file readable only by the owner
type TokenStore struct {
	TokenFile string
}

func NewTokenStore(configDir string) *TokenStore {
	return &TokenStore{
		TokenFile: filepath.Join(configDir, ".auth_token"),
	}
}

func (ts *TokenStore) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := os.MkdirAll(filepath.Dir(ts.TokenFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(ts.TokenFile, []byte(token), 0600)
}

// GetToken returns ErrNotLoggedIn when no token has been saved
func (ts *TokenStore) GetToken() (string, error) {
	data, err := os.ReadFile(ts.TokenFile)
	if os.IsNotExist(err) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

func (ts *TokenStore) ClearToken() error {
	if _, err := os.Stat(ts.TokenFile); os.IsNotExist(err) {
		return nil // nothing to clear
	}
	return os.Remove(ts.TokenFile)
}
