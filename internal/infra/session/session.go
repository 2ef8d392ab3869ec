// Package session stores the identity of the logged-in CLI user.
// The session is a single JSON file under the .deskhub directory.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deskhub/deskhub/internal/domain"
)

const sessionFileName = "session.json"

// Ensure Provider implements domain.SessionProvider.
var _ domain.SessionProvider = (*Provider)(nil)

// Provider implements domain.SessionProvider on a JSON file.
type Provider struct {
	deskhubDir string
}

// New creates a Provider rooted at the given deskhub directory.
func New(deskhubDir string) *Provider {
	return &Provider{deskhubDir: deskhubDir}
}

func (p *Provider) path() string {
	return filepath.Join(p.deskhubDir, sessionFileName)
}

// Current returns the logged-in identity, or ErrNotLoggedIn.
func (p *Provider) Current() (*domain.Identity, error) {
	data, err := os.ReadFile(p.path())
	if os.IsNotExist(err) {
		return nil, domain.ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if id.ID == "" || !id.Role.IsValid() {
		return nil, domain.ErrNotLoggedIn
	}
	return &id, nil
}

// SetCurrent records the identity as the current actor.
func (p *Provider) SetCurrent(id domain.Identity) error {
	if err := os.MkdirAll(p.deskhubDir, 0o750); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmpPath := p.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpPath, p.path()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// Clear removes the current session.
func (p *Provider) Clear() error {
	err := os.Remove(p.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
