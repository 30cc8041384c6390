package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting token changes.
type ConfigPersister interface {
	UpdateToken(token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps OAuth2TokenManager and automatically persists
// refreshed tokens to configuration storage.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	mutex           sync.RWMutex
	lastToken       string
	lastExpiry      time.Time
}

// NewConfigTokenManager creates a config-persisting token manager. An
// initial token, when present, seeds the manager so a cached credential is
// reused until it expires.
func NewConfigTokenManager(config *OAuth2Config, configPersister ConfigPersister, initialToken string, initialExpiry time.Time) *ConfigTokenManager {
	oauth2Manager := NewOAuth2TokenManager(config)

	if initialToken != "" {
		oauth2Manager.SetToken(initialToken, initialExpiry)
	}

	return &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: configPersister,
		lastToken:       initialToken,
		lastExpiry:      initialExpiry,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	// Persist the token when the exchange produced a new one.
	current := m.oauth2Manager.store.Get()
	if current != nil && (current.AccessToken != m.lastToken || !current.ExpiresAt.Equal(m.lastExpiry)) {
		go func() {
			persistErr := m.persistToken(current)
			if persistErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", persistErr)
			}
		}()

		m.lastToken = current.AccessToken
		m.lastExpiry = current.ExpiresAt
	}

	return token, nil
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	current := m.oauth2Manager.store.Get()
	if current != nil {
		persistErr := m.persistToken(current)
		if persistErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", persistErr)
		}

		m.lastToken = current.AccessToken
		m.lastExpiry = current.ExpiresAt
	}

	return nil
}

// SetToken manually sets the access token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

// TokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) TokenExpiry() time.Time {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	token := m.oauth2Manager.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateToken(token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	return nil
}
