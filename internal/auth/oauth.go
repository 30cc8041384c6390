package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials    = errors.New("no valid credentials available")
	ErrTokenEndpoint    = errors.New("token request failed")
	ErrEmptyAccessToken = errors.New("token response contained no access token")
)

// TokenManager handles token retrieval and refresh.
type TokenManager interface {
	// GetToken returns a valid access token, fetching a new one when needed.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken discards any stored token and fetches a fresh one.
	RefreshToken(ctx context.Context) error

	// SetToken seeds the manager with an existing token.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures the client credentials grant against the token
// endpoint.
type OAuth2Config struct {
	// TokenURL is the OAuth2 token endpoint.
	TokenURL string

	// ClientID and ClientSecret authenticate the client.
	ClientID     string
	ClientSecret string

	// Scopes restrict the issued token, for example "tsg_id:1234".
	Scopes []string

	// AccessToken seeds the store with an existing token.
	AccessToken string

	// HTTPClient overrides the client used for token requests.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains tokens with the OAuth2 client credentials grant.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewOAuth2TokenManager creates a token manager for the given config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: config.HTTPClient,
	}

	if manager.httpClient == nil {
		manager.httpClient = &http.Client{Timeout: constants.ShortHTTPTimeout}
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{AccessToken: config.AccessToken, TokenType: "bearer"})
	}

	return manager
}

// GetToken returns a valid access token, exchanging credentials when the
// stored token is missing or expiring.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have fetched a token while we waited for the lock.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken discards the stored token and fetches a new one.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.fetchToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// fetchToken performs the client credentials exchange.
func (m *OAuth2TokenManager) fetchToken(ctx context.Context) (*Token, error) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return nil, ErrNoCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	if len(m.config.Scopes) > 0 {
		form.Set("scope", strings.Join(m.config.Scopes, " "))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, tokenEndpointError(body, resp.StatusCode)
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, ErrEmptyAccessToken
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}

// tokenEndpointError surfaces the error and error_description fields the
// token endpoint returns on failure.
func tokenEndpointError(body []byte, statusCode int) error {
	var payload struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}

	err := json.Unmarshal(body, &payload)
	if err == nil && payload.Error != "" {
		if payload.Description != "" {
			return fmt.Errorf("%w (status %d): %s: %s", ErrTokenEndpoint, statusCode, payload.Error, payload.Description)
		}

		return fmt.Errorf("%w (status %d): %s", ErrTokenEndpoint, statusCode, payload.Error)
	}

	return fmt.Errorf("%w (status %d)", ErrTokenEndpoint, statusCode)
}
