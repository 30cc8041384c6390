package client

import (
	"context"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// serviceFilters lists the typed filters service listings accept. The
// protocol is derived from the record's nested protocol object.
var serviceFilters = []ccm.FilterSpec{
	{Key: "protocols", Kind: ccm.FilterList, Extract: serviceProtocols},
	{Key: "tags", Field: "tag", Kind: ccm.FilterList},
}

func serviceProtocols(record ccm.RawRecord) []string {
	protocol, ok := record["protocol"].(map[string]interface{})
	if !ok {
		return nil
	}

	var kinds []string

	if _, ok := protocol["tcp"]; ok {
		kinds = append(kinds, "tcp")
	}

	if _, ok := protocol["udp"]; ok {
		kinds = append(kinds, "udp")
	}

	return kinds
}

// ServicesClient implements ccm.ServicesClient.
type ServicesClient struct {
	engine *resourceClient[ccm.Service]
}

// NewServicesClient creates a new services client.
func NewServicesClient(httpClient *http.Client, limit int, logger ccm.Logger) *ServicesClient {
	return &ServicesClient{
		engine: newResourceClient[ccm.Service](httpClient, resourceConfig{
			endpoint: constants.ObjectsBasePath + "/services",
			singular: "service",
			plural:   "services",
			filters:  serviceFilters,
		}, limit, logger),
	}
}

// Create implements ccm.ServicesClient.Create.
func (c *ServicesClient) Create(ctx context.Context, request *ccm.ServiceCreate) (*ccm.Service, error) {
	return c.engine.create(ctx, request.Scope, request)
}

// Get implements ccm.ServicesClient.Get.
func (c *ServicesClient) Get(ctx context.Context, id string) (*ccm.Service, error) {
	return c.engine.get(ctx, id)
}

// Update implements ccm.ServicesClient.Update.
func (c *ServicesClient) Update(ctx context.Context, id string, request *ccm.ServiceUpdate) (*ccm.Service, error) {
	return c.engine.update(ctx, id, request)
}

// Delete implements ccm.ServicesClient.Delete.
func (c *ServicesClient) Delete(ctx context.Context, id string) error {
	return c.engine.delete(ctx, id)
}

// List implements ccm.ServicesClient.List.
func (c *ServicesClient) List(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]ccm.Service, error) {
	return c.engine.list(ctx, scope, opts)
}

// Fetch implements ccm.ServicesClient.Fetch.
func (c *ServicesClient) Fetch(ctx context.Context, scope ccm.Scope, name string) (*ccm.Service, error) {
	return c.engine.fetch(ctx, scope, name)
}

// MaxLimit implements ccm.ServicesClient.MaxLimit.
func (c *ServicesClient) MaxLimit() int {
	return c.engine.maxLimit()
}

// SetMaxLimit implements ccm.ServicesClient.SetMaxLimit.
func (c *ServicesClient) SetMaxLimit(limit int) error {
	return c.engine.setMaxLimit(limit)
}
