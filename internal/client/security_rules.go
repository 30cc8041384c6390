package client

import (
	"context"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// securityRuleFilters lists the typed filters security rule listings accept.
var securityRuleFilters = []ccm.FilterSpec{
	{Key: "action", Field: "action", Kind: ccm.FilterList},
	{Key: "disabled", Field: "disabled", Kind: ccm.FilterBool},
	{Key: "tags", Field: "tag", Kind: ccm.FilterList},
}

// SecurityRulesClient implements ccm.SecurityRulesClient.
type SecurityRulesClient struct {
	engine *resourceClient[ccm.SecurityRule]
}

// NewSecurityRulesClient creates a new security rules client.
func NewSecurityRulesClient(httpClient *http.Client, limit int, logger ccm.Logger) *SecurityRulesClient {
	return &SecurityRulesClient{
		engine: newResourceClient[ccm.SecurityRule](httpClient, resourceConfig{
			endpoint: constants.SecurityBasePath + "/security-rules",
			singular: "security rule",
			plural:   "security rules",
			filters:  securityRuleFilters,
		}, limit, logger),
	}
}

// Create implements ccm.SecurityRulesClient.Create.
func (c *SecurityRulesClient) Create(ctx context.Context, request *ccm.SecurityRuleCreate) (*ccm.SecurityRule, error) {
	return c.engine.create(ctx, request.Scope, request)
}

// Get implements ccm.SecurityRulesClient.Get.
func (c *SecurityRulesClient) Get(ctx context.Context, id string) (*ccm.SecurityRule, error) {
	return c.engine.get(ctx, id)
}

// Update implements ccm.SecurityRulesClient.Update.
func (c *SecurityRulesClient) Update(ctx context.Context, id string, request *ccm.SecurityRuleUpdate) (*ccm.SecurityRule, error) {
	return c.engine.update(ctx, id, request)
}

// Delete implements ccm.SecurityRulesClient.Delete.
func (c *SecurityRulesClient) Delete(ctx context.Context, id string) error {
	return c.engine.delete(ctx, id)
}

// List implements ccm.SecurityRulesClient.List.
func (c *SecurityRulesClient) List(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]ccm.SecurityRule, error) {
	return c.engine.list(ctx, scope, opts)
}

// Fetch implements ccm.SecurityRulesClient.Fetch.
func (c *SecurityRulesClient) Fetch(ctx context.Context, scope ccm.Scope, name string) (*ccm.SecurityRule, error) {
	return c.engine.fetch(ctx, scope, name)
}

// MaxLimit implements ccm.SecurityRulesClient.MaxLimit.
func (c *SecurityRulesClient) MaxLimit() int {
	return c.engine.maxLimit()
}

// SetMaxLimit implements ccm.SecurityRulesClient.SetMaxLimit.
func (c *SecurityRulesClient) SetMaxLimit(limit int) error {
	return c.engine.setMaxLimit(limit)
}
