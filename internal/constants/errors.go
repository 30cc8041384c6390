package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'ccm config set endpoint <url>' or --endpoint")
	ErrNotAuthenticated     = errors.New("not authenticated, run 'ccm login' first")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
)

// Scope flag errors.
var (
	ErrScopeFlagRequired = errors.New("exactly one of --folder, --snippet, or --device is required")
)
