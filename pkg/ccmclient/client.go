// Package ccmclient provides the main entry point for creating configuration management API clients
package ccmclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/ccm-client/internal/client"
	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// New creates a new configuration management API client. Construction
// performs no I/O; credentials are exchanged on the first request.
func New(ctx context.Context, config *ccm.Config) (ccm.Client, error) {
	if config == nil {
		return nil, ccm.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, ccm.ErrMissingEndpoint
	}

	// Normalize API endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	// Derive the token URL from the normalized endpoint for OAuth2
	if needsAuth(config) && config.TokenURL == "" {
		config.TokenURL = endpoint + constants.TokenPath
	}

	ccmClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return ccmClient, nil
}

// needsAuth checks if the config requires authentication.
func needsAuth(config *ccm.Config) bool {
	return config.ClientID != "" && config.ClientSecret != ""
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (ccm.Client, error) {
	return New(ctx, &ccm.Config{
		Endpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (ccm.Client, error) {
	return New(ctx, &ccm.Config{
		Endpoint:    endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using OAuth2 client
// credentials.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string, scopes ...string) (ccm.Client, error) {
	return New(ctx, &ccm.Config{
		Endpoint:     endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       scopes,
	})
}
