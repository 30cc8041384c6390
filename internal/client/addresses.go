package client

import (
	"context"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// addressForms maps each address form field to the type name used by the
// types filter. An address carries exactly one form field.
var addressForms = []struct {
	field string
	kind  string
}{
	{field: "ip_netmask", kind: "ip-netmask"},
	{field: "ip_range", kind: "ip-range"},
	{field: "ip_wildcard", kind: "ip-wildcard"},
	{field: "fqdn", kind: "fqdn"},
}

// addressFilters lists the typed filters address listings accept. Type and
// value are derived from whichever form field the record carries.
var addressFilters = []ccm.FilterSpec{
	{Key: "types", Kind: ccm.FilterList, Extract: addressTypes},
	{Key: "values", Kind: ccm.FilterList, Extract: addressValues},
	{Key: "tags", Field: "tag", Kind: ccm.FilterList},
}

func addressTypes(record ccm.RawRecord) []string {
	for _, form := range addressForms {
		_, ok := record.StringField(form.field)
		if ok {
			return []string{form.kind}
		}
	}

	return nil
}

func addressValues(record ccm.RawRecord) []string {
	for _, form := range addressForms {
		value, ok := record.StringField(form.field)
		if ok {
			return []string{value}
		}
	}

	return nil
}

// AddressesClient implements ccm.AddressesClient.
type AddressesClient struct {
	engine *resourceClient[ccm.Address]
}

// NewAddressesClient creates a new addresses client.
func NewAddressesClient(httpClient *http.Client, limit int, logger ccm.Logger) *AddressesClient {
	return &AddressesClient{
		engine: newResourceClient[ccm.Address](httpClient, resourceConfig{
			endpoint: constants.ObjectsBasePath + "/addresses",
			singular: "address",
			plural:   "addresses",
			filters:  addressFilters,
		}, limit, logger),
	}
}

// Create implements ccm.AddressesClient.Create.
func (c *AddressesClient) Create(ctx context.Context, request *ccm.AddressCreate) (*ccm.Address, error) {
	return c.engine.create(ctx, request.Scope, request)
}

// Get implements ccm.AddressesClient.Get.
func (c *AddressesClient) Get(ctx context.Context, id string) (*ccm.Address, error) {
	return c.engine.get(ctx, id)
}

// Update implements ccm.AddressesClient.Update.
func (c *AddressesClient) Update(ctx context.Context, id string, request *ccm.AddressUpdate) (*ccm.Address, error) {
	return c.engine.update(ctx, id, request)
}

// Delete implements ccm.AddressesClient.Delete.
func (c *AddressesClient) Delete(ctx context.Context, id string) error {
	return c.engine.delete(ctx, id)
}

// List implements ccm.AddressesClient.List.
func (c *AddressesClient) List(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]ccm.Address, error) {
	return c.engine.list(ctx, scope, opts)
}

// Fetch implements ccm.AddressesClient.Fetch.
func (c *AddressesClient) Fetch(ctx context.Context, scope ccm.Scope, name string) (*ccm.Address, error) {
	return c.engine.fetch(ctx, scope, name)
}

// MaxLimit implements ccm.AddressesClient.MaxLimit.
func (c *AddressesClient) MaxLimit() int {
	return c.engine.maxLimit()
}

// SetMaxLimit implements ccm.AddressesClient.SetMaxLimit.
func (c *AddressesClient) SetMaxLimit(limit int) error {
	return c.engine.setMaxLimit(limit)
}
