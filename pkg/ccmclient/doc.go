// Package ccmclient provides the primary entry point for constructing a
// configuration management API client that implements the ccm.Client
// interface.
//
// It layers configuration, HTTP transport, and OAuth2 authentication on top
// of the resource interfaces and types defined in the ccm package. Most
// applications should import ccmclient to build a client, then use the
// returned ccm.Client to access resource-specific clients, for example
// Addresses(), Services(), SecurityRules(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ccm-client/pkg/ccm"
//	  "github.com/fivetwenty-io/ccm-client/pkg/ccmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API endpoint (no auth).
//	  cli, err := ccmclient.New(ctx, &ccm.Config{Endpoint: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = ccmclient.New(ctx, &ccm.Config{
//	    Endpoint:    "https://api.example.com",
//	    AccessToken: "eyJhbGciOi...", // bearer token
//	  })
//
//	  // Or with client credentials. When credentials are provided and no
//	  // token URL is set, the endpoint's /oauth2/access_token path is used.
//	  cli, err = ccmclient.New(ctx, &ccm.Config{
//	    Endpoint:     "https://api.example.com",
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    Scopes:       []string{"tsg_id:1234"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the ccm.Client interface
//	  addresses, err := cli.Addresses().List(ctx, ccm.InFolder("Shared"), nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = addresses
//	}
//
// # TLS and development mode
//
// For local development, you can set Config.SkipTLSVerify=true. This is gated
// by the environment variable CCM_DEV_MODE to avoid accidental insecure usage
// in production environments.
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithToken, and NewWithClientCredentials that wrap New with the
// appropriate configuration.
package ccmclient
