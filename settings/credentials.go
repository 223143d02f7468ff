// Package settings is tarjem's on-disk user settings store: provider
// API keys, custom system prompts, and the user glossary, all under
// $XDG_DATA_HOME/tarjem/ (~/.local/share/tarjem/ when unset).
//
// API keys resolve in this order: the --api-key flag, then the
// TARJEM_API_KEY environment variable, then auth.json here. auth.json
// is written with 0600 permissions.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const dirName = "tarjem"

// Info is one provider's entry in auth.json.
type Info struct {
	Key string `json:"key"`
	// BaseURL overrides the provider endpoint (custom-openai, ollama).
	BaseURL string `json:"baseUrl,omitempty"`
}

// Store maps provider IDs to their stored credentials.
type Store map[string]*Info

// DataDir returns the tarjem data directory, honoring XDG_DATA_HOME.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dirName), nil
}

func inDataDir(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// FilePath returns the auth.json path for display. Empty when the
// home directory cannot be resolved.
func FilePath() string {
	p, err := inDataDir("auth.json")
	if err != nil {
		return ""
	}
	return p
}

// PromptsFilePath returns the custom system prompts file path.
func PromptsFilePath() (string, error) {
	return inDataDir("prompts.json")
}

// GlossaryFilePath returns the user glossary file path.
func GlossaryFilePath() (string, error) {
	return inDataDir("glossary.json")
}

// Load reads the credential store. A missing or unreadable auth.json
// yields an empty store; auth problems never block the CLI from
// running with flag- or env-supplied keys.
func Load() Store {
	store := make(Store)
	path, err := inDataDir("auth.json")
	if err != nil {
		return store
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return store
	}
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		return make(Store)
	}
	return store
}

// Save writes the credential store, creating the data directory as
// needed. The file is 0600: it holds secrets.
func Save(store Store) error {
	path, err := inDataDir("auth.json")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}
	return nil
}

// SetAPIKey upserts a provider's API key, keeping any stored BaseURL.
func SetAPIKey(providerID, key string) error {
	store := Load()
	info := &Info{Key: key}
	if prev := store[providerID]; prev != nil {
		info.BaseURL = prev.BaseURL
	}
	store[providerID] = info
	return Save(store)
}

// SetAPIKeyWithBaseURL stores a key together with a custom endpoint.
func SetAPIKeyWithBaseURL(providerID, key, baseURL string) error {
	store := Load()
	store[providerID] = &Info{Key: key, BaseURL: baseURL}
	return Save(store)
}

// GetAPIKey returns the stored key for a provider, or "".
func GetAPIKey(providerID string) string {
	if info := Load()[providerID]; info != nil {
		return info.Key
	}
	return ""
}

// GetBaseURL returns the stored endpoint for a provider, or "".
func GetBaseURL(providerID string) string {
	if info := Load()[providerID]; info != nil {
		return info.BaseURL
	}
	return ""
}

// Remove deletes one provider's credentials. Removing an absent
// provider is a no-op.
func Remove(providerID string) error {
	store := Load()
	if _, ok := store[providerID]; !ok {
		return nil
	}
	delete(store, providerID)
	return Save(store)
}

// RemoveAll deletes the auth file entirely.
func RemoveAll() error {
	path, err := inDataDir("auth.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing auth file: %w", err)
	}
	return nil
}

// MaskKey shortens a key for terminal display: first and last four
// characters with the middle elided, or stars for short keys.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
