package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// HTTP identification.
const (
	// DefaultUserAgent identifies the client on outgoing requests.
	DefaultUserAgent = "ccm-client/1.0"
)

// API paths.
const (
	// ObjectsBasePath is the prefix for configuration object endpoints.
	ObjectsBasePath = "/config/objects/v1"

	// SecurityBasePath is the prefix for security policy endpoints.
	SecurityBasePath = "/config/security/v1"

	// TokenPath is the default OAuth2 token endpoint path.
	TokenPath = "/oauth2/access_token"
)

// Environment variables.
const (
	// EnvDevMode enables development-only behavior such as skipping TLS
	// verification.
	EnvDevMode = "CCM_DEV_MODE"
)

// UI and display constants.
const (
	// TableCellMaxItems is the number of list items shown in a table cell
	// before truncation.
	TableCellMaxItems = 3

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
