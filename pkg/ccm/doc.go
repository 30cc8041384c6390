// Package ccm defines the public types and interfaces for the configuration
// management API client.
//
// # Overview
//
// The package provides typed clients for configuration resources (addresses,
// address groups, services, tags, and security rules), the Scope type that
// selects the container a resource lives in, list filtering options, and the
// error taxonomy shared by every client.
//
// Use the ccmclient package to construct a working client:
//
//	client, err := ccmclient.New(ctx, &ccm.Config{
//		Endpoint:     "https://api.example.com",
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	addresses, err := client.Addresses().List(ctx, ccm.InFolder("Shared"), nil)
//
// # Scopes
//
// Every resource lives in exactly one container: a folder, a snippet, or a
// device. A Scope names that container and is required for List, Fetch, and
// Create operations. Scopes with zero or several containers fail validation
// with ErrInvalidScope; a blank container value fails with
// ErrMissingScopeValue.
//
// # Listing and filtering
//
// List retrieves every record in a scope, paging through the collection with
// limit/offset requests until a short page arrives. Results can be narrowed
// with ListOptions:
//
//	opts := ccm.NewListOptions().
//		WithExactMatch(true).
//		WithExcludeFolders("defaults").
//		WithFilter("tags", []string{"prod"})
//
// Exact match runs first, then container exclusions, then resource-specific
// filters. A list filter given an empty list matches no records.
//
// # Errors
//
// API failures carry a *ResponseError with the HTTP status, the request id,
// and the individual API errors. Helpers cover the common cases:
//
//	rule, err := client.SecurityRules().Fetch(ctx, ccm.InFolder("Shared"), "allow-web")
//	if ccm.IsNotFound(err) {
//		// create it
//	}
//
// Validation failures surface as wrapped sentinel errors (ErrInvalidScope,
// ErrInvalidFilterValue, ErrInvalidPageSize, and friends) and work with
// errors.Is.
package ccm
