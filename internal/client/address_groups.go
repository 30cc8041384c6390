package client

import (
	"context"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// addressGroupFilters lists the typed filters address group listings accept.
// A group is static or dynamic depending on which member field it carries;
// its values are the static member list or the dynamic tag expression.
var addressGroupFilters = []ccm.FilterSpec{
	{Key: "types", Kind: ccm.FilterList, Extract: addressGroupTypes},
	{Key: "values", Kind: ccm.FilterList, Extract: addressGroupValues},
	{Key: "tags", Field: "tag", Kind: ccm.FilterList},
}

func addressGroupTypes(record ccm.RawRecord) []string {
	if _, ok := record["static"]; ok {
		return []string{"static"}
	}

	if _, ok := record["dynamic"]; ok {
		return []string{"dynamic"}
	}

	return nil
}

func addressGroupValues(record ccm.RawRecord) []string {
	if members := record.StringsField("static"); len(members) > 0 {
		return members
	}

	dynamic, ok := record["dynamic"].(map[string]interface{})
	if !ok {
		return nil
	}

	filter, ok := dynamic["filter"].(string)
	if !ok {
		return nil
	}

	return []string{filter}
}

// AddressGroupsClient implements ccm.AddressGroupsClient.
type AddressGroupsClient struct {
	engine *resourceClient[ccm.AddressGroup]
}

// NewAddressGroupsClient creates a new address groups client.
func NewAddressGroupsClient(httpClient *http.Client, limit int, logger ccm.Logger) *AddressGroupsClient {
	return &AddressGroupsClient{
		engine: newResourceClient[ccm.AddressGroup](httpClient, resourceConfig{
			endpoint: constants.ObjectsBasePath + "/address-groups",
			singular: "address group",
			plural:   "address groups",
			filters:  addressGroupFilters,
		}, limit, logger),
	}
}

// Create implements ccm.AddressGroupsClient.Create.
func (c *AddressGroupsClient) Create(ctx context.Context, request *ccm.AddressGroupCreate) (*ccm.AddressGroup, error) {
	return c.engine.create(ctx, request.Scope, request)
}

// Get implements ccm.AddressGroupsClient.Get.
func (c *AddressGroupsClient) Get(ctx context.Context, id string) (*ccm.AddressGroup, error) {
	return c.engine.get(ctx, id)
}

// Update implements ccm.AddressGroupsClient.Update.
func (c *AddressGroupsClient) Update(ctx context.Context, id string, request *ccm.AddressGroupUpdate) (*ccm.AddressGroup, error) {
	return c.engine.update(ctx, id, request)
}

// Delete implements ccm.AddressGroupsClient.Delete.
func (c *AddressGroupsClient) Delete(ctx context.Context, id string) error {
	return c.engine.delete(ctx, id)
}

// List implements ccm.AddressGroupsClient.List.
func (c *AddressGroupsClient) List(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]ccm.AddressGroup, error) {
	return c.engine.list(ctx, scope, opts)
}

// Fetch implements ccm.AddressGroupsClient.Fetch.
func (c *AddressGroupsClient) Fetch(ctx context.Context, scope ccm.Scope, name string) (*ccm.AddressGroup, error) {
	return c.engine.fetch(ctx, scope, name)
}

// MaxLimit implements ccm.AddressGroupsClient.MaxLimit.
func (c *AddressGroupsClient) MaxLimit() int {
	return c.engine.maxLimit()
}

// SetMaxLimit implements ccm.AddressGroupsClient.SetMaxLimit.
func (c *AddressGroupsClient) SetMaxLimit(limit int) error {
	return c.engine.setMaxLimit(limit)
}
