package client

import (
	"context"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// tagFilters lists the typed filters tag listings accept.
var tagFilters = []ccm.FilterSpec{
	{Key: "colors", Field: "color", Kind: ccm.FilterList},
}

// TagsClient implements ccm.TagsClient.
type TagsClient struct {
	engine *resourceClient[ccm.Tag]
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client, limit int, logger ccm.Logger) *TagsClient {
	return &TagsClient{
		engine: newResourceClient[ccm.Tag](httpClient, resourceConfig{
			endpoint: constants.ObjectsBasePath + "/tags",
			singular: "tag",
			plural:   "tags",
			filters:  tagFilters,
		}, limit, logger),
	}
}

// Create implements ccm.TagsClient.Create.
func (c *TagsClient) Create(ctx context.Context, request *ccm.TagCreate) (*ccm.Tag, error) {
	return c.engine.create(ctx, request.Scope, request)
}

// Get implements ccm.TagsClient.Get.
func (c *TagsClient) Get(ctx context.Context, id string) (*ccm.Tag, error) {
	return c.engine.get(ctx, id)
}

// Update implements ccm.TagsClient.Update.
func (c *TagsClient) Update(ctx context.Context, id string, request *ccm.TagUpdate) (*ccm.Tag, error) {
	return c.engine.update(ctx, id, request)
}

// Delete implements ccm.TagsClient.Delete.
func (c *TagsClient) Delete(ctx context.Context, id string) error {
	return c.engine.delete(ctx, id)
}

// List implements ccm.TagsClient.List.
func (c *TagsClient) List(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]ccm.Tag, error) {
	return c.engine.list(ctx, scope, opts)
}

// Fetch implements ccm.TagsClient.Fetch.
func (c *TagsClient) Fetch(ctx context.Context, scope ccm.Scope, name string) (*ccm.Tag, error) {
	return c.engine.fetch(ctx, scope, name)
}

// MaxLimit implements ccm.TagsClient.MaxLimit.
func (c *TagsClient) MaxLimit() int {
	return c.engine.maxLimit()
}

// SetMaxLimit implements ccm.TagsClient.SetMaxLimit.
func (c *TagsClient) SetMaxLimit(limit int) error {
	return c.engine.setMaxLimit(limit)
}
