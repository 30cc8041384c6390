package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"time"

	"github.com/fivetwenty-io/ccm-client/internal/auth"
	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// Static errors for err113 compliance.
var (
	ErrEndpointRequired         = errors.New("API endpoint is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the ccm.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       ccm.Logger
	pageSize     int

	// Resource clients
	addresses     ccm.AddressesClient
	addressGroups ccm.AddressGroupsClient
	services      ccm.ServicesClient
	tags          ccm.TagsClient
	securityRules ccm.SecurityRulesClient
}

// createTokenManager creates the appropriate token manager for the config.
func createTokenManager(config *ccm.Config) auth.TokenManager {
	if config.ClientID != "" && config.ClientSecret != "" {
		return createOAuth2TokenManager(config)
	}

	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	return nil // No authentication
}

// createOAuth2TokenManager creates a client credentials token manager. A
// caller-supplied access token seeds it and is used until it expires.
func createOAuth2TokenManager(config *ccm.Config) auth.TokenManager {
	oauthConfig := &auth.OAuth2Config{
		TokenURL:     getTokenURL(config),
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       config.Scopes,
		AccessToken:  config.AccessToken,
		HTTPClient:   createOAuthHTTPClient(config),
	}

	return auth.NewOAuth2TokenManager(oauthConfig)
}

// getTokenURL returns the token URL from the config or the endpoint default.
func getTokenURL(config *ccm.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return config.Endpoint + constants.TokenPath
}

// createOAuthHTTPClient returns the HTTP client for token requests, or nil
// to let the token manager use its default. A dedicated client is only
// needed when certificate verification is being skipped.
func createOAuthHTTPClient(config *ccm.Config) *stdhttp.Client {
	if !tlsSkipAllowed(config) {
		return nil
	}

	return &stdhttp.Client{
		Timeout: constants.ShortHTTPTimeout,
		Transport: &stdhttp.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // gated on CCM_DEV_MODE
		},
	}
}

// tlsSkipAllowed reports whether certificate verification may be skipped:
// the config asks for it and the process runs in an explicit development
// environment.
func tlsSkipAllowed(config *ccm.Config) bool {
	if !config.SkipTLSVerify {
		return false
	}

	devMode := os.Getenv(constants.EnvDevMode)

	return devMode == "true" || devMode == "1"
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ccm.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if tlsSkipAllowed(config) {
		httpOpts = append(httpOpts, http.WithTLSSkipVerify(true))
	}

	return httpOpts
}

// New creates a new configuration management API client.
func New(config *ccm.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, ErrEndpointRequired
	}

	pageSize := config.PageSize
	if pageSize == 0 {
		pageSize = ccm.DefaultPageSize
	}

	err := ccm.ValidatePageSize(pageSize)
	if err != nil {
		return nil, err
	}

	// Create token manager based on available credentials
	tokenManager := createTokenManager(config)

	// Create HTTP client
	httpClient := http.NewClient(config.Endpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
		pageSize:     pageSize,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new client with a custom token manager.
func NewWithTokenManager(config *ccm.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.Endpoint == "" {
		return nil, ErrEndpointRequired
	}

	pageSize := config.PageSize
	if pageSize == 0 {
		pageSize = ccm.DefaultPageSize
	}

	err := ccm.ValidatePageSize(pageSize)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.Endpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
		pageSize:     pageSize,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Addresses implements ccm.Client.Addresses.
func (c *Client) Addresses() ccm.AddressesClient {
	return c.addresses
}

// AddressGroups implements ccm.Client.AddressGroups.
func (c *Client) AddressGroups() ccm.AddressGroupsClient {
	return c.addressGroups
}

// Services implements ccm.Client.Services.
func (c *Client) Services() ccm.ServicesClient {
	return c.services
}

// Tags implements ccm.Client.Tags.
func (c *Client) Tags() ccm.TagsClient {
	return c.tags
}

// SecurityRules implements ccm.Client.SecurityRules.
func (c *Client) SecurityRules() ccm.SecurityRulesClient {
	return c.securityRules
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.addresses = NewAddressesClient(c.httpClient, c.pageSize, c.logger)
	c.addressGroups = NewAddressGroupsClient(c.httpClient, c.pageSize, c.logger)
	c.services = NewServicesClient(c.httpClient, c.pageSize, c.logger)
	c.tags = NewTagsClient(c.httpClient, c.pageSize, c.logger)
	c.securityRules = NewSecurityRulesClient(c.httpClient, c.pageSize, c.logger)
}

// staticTokenManager provides a static token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// loggerAdapter adapts ccm.Logger to http.Logger.
type loggerAdapter struct {
	logger ccm.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
