package ccm

import (
	"context"
	"errors"
	"time"
)

// ErrUseConcreteClient indicates that the concrete client implementation
// should be used.
var ErrUseConcreteClient = errors.New("use ccmclient.New() to create a client")

// Client is the top-level interface for the configuration management API.
type Client interface {
	// Addresses returns the client for address objects.
	Addresses() AddressesClient
	// AddressGroups returns the client for address groups.
	AddressGroups() AddressGroupsClient
	// Services returns the client for service objects.
	Services() ServicesClient
	// Tags returns the client for tags.
	Tags() TagsClient
	// SecurityRules returns the client for security rules.
	SecurityRules() SecurityRulesClient
}

// AddressesClient manages address objects.
//
// List filters: "types" (list of ip-netmask, ip-range, ip-wildcard, fqdn),
// "values" (list), "tags" (list).
type AddressesClient interface {
	Create(ctx context.Context, request *AddressCreate) (*Address, error)
	Get(ctx context.Context, id string) (*Address, error)
	Update(ctx context.Context, id string, request *AddressUpdate) (*Address, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope Scope, opts *ListOptions) ([]Address, error)
	Fetch(ctx context.Context, scope Scope, name string) (*Address, error)
	MaxLimit() int
	SetMaxLimit(limit int) error
}

// AddressGroupsClient manages address groups.
//
// List filters: "types" (list of static, dynamic), "values" (list), "tags"
// (list).
type AddressGroupsClient interface {
	Create(ctx context.Context, request *AddressGroupCreate) (*AddressGroup, error)
	Get(ctx context.Context, id string) (*AddressGroup, error)
	Update(ctx context.Context, id string, request *AddressGroupUpdate) (*AddressGroup, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope Scope, opts *ListOptions) ([]AddressGroup, error)
	Fetch(ctx context.Context, scope Scope, name string) (*AddressGroup, error)
	MaxLimit() int
	SetMaxLimit(limit int) error
}

// ServicesClient manages service objects.
//
// List filters: "protocols" (list of tcp, udp), "tags" (list).
type ServicesClient interface {
	Create(ctx context.Context, request *ServiceCreate) (*Service, error)
	Get(ctx context.Context, id string) (*Service, error)
	Update(ctx context.Context, id string, request *ServiceUpdate) (*Service, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope Scope, opts *ListOptions) ([]Service, error)
	Fetch(ctx context.Context, scope Scope, name string) (*Service, error)
	MaxLimit() int
	SetMaxLimit(limit int) error
}

// TagsClient manages tags.
//
// List filters: "colors" (list).
type TagsClient interface {
	Create(ctx context.Context, request *TagCreate) (*Tag, error)
	Get(ctx context.Context, id string) (*Tag, error)
	Update(ctx context.Context, id string, request *TagUpdate) (*Tag, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope Scope, opts *ListOptions) ([]Tag, error)
	Fetch(ctx context.Context, scope Scope, name string) (*Tag, error)
	MaxLimit() int
	SetMaxLimit(limit int) error
}

// SecurityRulesClient manages security rules.
//
// List filters: "action" (string), "disabled" (bool), "tags" (list).
type SecurityRulesClient interface {
	Create(ctx context.Context, request *SecurityRuleCreate) (*SecurityRule, error)
	Get(ctx context.Context, id string) (*SecurityRule, error)
	Update(ctx context.Context, id string, request *SecurityRuleUpdate) (*SecurityRule, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope Scope, opts *ListOptions) ([]SecurityRule, error)
	Fetch(ctx context.Context, scope Scope, name string) (*SecurityRule, error)
	MaxLimit() int
	SetMaxLimit(limit int) error
}

// Logger is the interface for logging within the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the client configuration.
type Config struct {
	// Endpoint is the base URL of the configuration management API.
	// Required.
	Endpoint string

	// TokenURL is the OAuth2 token endpoint. When client credentials are
	// set and TokenURL is empty, it defaults to the endpoint's
	// /oauth2/access_token path.
	TokenURL string

	// ClientID and ClientSecret enable the OAuth2 client credentials grant.
	ClientID     string
	ClientSecret string

	// Scopes restricts the requested token, for example "tsg_id:1234".
	Scopes []string

	// AccessToken is used verbatim as a bearer token when set, bypassing
	// OAuth2.
	AccessToken string

	// HTTPTimeout bounds each HTTP request. Zero selects the transport
	// default.
	HTTPTimeout time.Duration

	// PageSize is the page size for list requests. Zero selects
	// DefaultPageSize; values above MaxPageSize are rejected.
	PageSize int

	// RetryMax enables transport-level retries for transient failures when
	// positive. Zero disables retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables HTTP request and response logging.
	Debug bool

	// Logger receives client logs. Nil disables logging.
	Logger Logger

	// SkipTLSVerify disables certificate verification. It is honored only
	// when the CCM_DEV_MODE environment variable is "true".
	SkipTLSVerify bool
}

// NewClient is a placeholder for API compatibility.
//
// Deprecated: use ccmclient.New instead, which returns a fully wired client.
func NewClient(_ context.Context, _ *Config) (Client, error) {
	return nil, ErrUseConcreteClient
}
