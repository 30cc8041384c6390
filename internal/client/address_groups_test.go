package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

func groupNames(groups []ccm.AddressGroup) []string {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
	}

	return names
}

func TestAddressGroupsClient_Create(t *testing.T) {
	tests := []TestCreateOperation[ccm.AddressGroupCreate, ccm.AddressGroup]{
		{
			Name: "static group",
			Request: &ccm.AddressGroupCreate{
				Scope:  ccm.InFolder("Shared"),
				Name:   "web-tier",
				Static: []string{"web-1", "web-2"},
			},
			ExpectedPath: "/config/objects/v1/address-groups",
			StatusCode:   http.StatusCreated,
			Response: &ccm.AddressGroup{
				ID:     "group-id",
				Name:   "web-tier",
				Static: []string{"web-1", "web-2"},
				Folder: "Shared",
			},
		},
		{
			Name: "dynamic group",
			Request: &ccm.AddressGroupCreate{
				Scope:   ccm.InSnippet("dns"),
				Name:    "prod-hosts",
				Dynamic: &ccm.DynamicFilter{Filter: "'prod' and 'web'"},
			},
			ExpectedPath: "/config/objects/v1/address-groups",
			StatusCode:   http.StatusCreated,
			Response: &ccm.AddressGroup{
				ID:      "group-id",
				Name:    "prod-hosts",
				Dynamic: &ccm.DynamicFilter{Filter: "'prod' and 'web'"},
				Snippet: "dns",
			},
		},
		{
			Name: "missing scope",
			Request: &ccm.AddressGroupCreate{
				Name:   "web-tier",
				Static: []string{"web-1"},
			},
			ExpectedPath: "/config/objects/v1/address-groups",
			StatusCode:   http.StatusCreated,
			WantErr:      true,
			ErrMessage:   "exactly one of folder, snippet, or device",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *ccm.AddressGroupCreate) (*ccm.AddressGroup, error) {
		return c.AddressGroups().Create
	})
}

func TestAddressGroupsClient_Get(t *testing.T) {
	tests := []TestGetOperation[ccm.AddressGroup]{
		{
			Name:         "existing group",
			ID:           "group-id",
			ExpectedPath: "/config/objects/v1/address-groups/group-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.AddressGroup{
				ID:     "group-id",
				Name:   "web-tier",
				Static: []string{"web-1"},
				Folder: "Shared",
			},
		},
		{
			Name:         "missing group",
			ID:           "missing-id",
			ExpectedPath: "/config/objects/v1/address-groups/missing-id",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Object Not Present",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*ccm.AddressGroup, error) {
		return c.AddressGroups().Get
	})
}

func TestAddressGroupsClient_Update(t *testing.T) {
	tests := []TestUpdateOperation[ccm.AddressGroupUpdate, ccm.AddressGroup]{
		{
			Name: "replace members",
			ID:   "group-id",
			Request: &ccm.AddressGroupUpdate{
				Name:   "web-tier",
				Static: []string{"web-1", "web-2", "web-3"},
			},
			ExpectedPath: "/config/objects/v1/address-groups/group-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.AddressGroup{
				ID:     "group-id",
				Name:   "web-tier",
				Static: []string{"web-1", "web-2", "web-3"},
				Folder: "Shared",
			},
		},
	}

	RunUpdateTests(t, tests, func(c *Client) func(context.Context, string, *ccm.AddressGroupUpdate) (*ccm.AddressGroup, error) {
		return c.AddressGroups().Update
	})
}

func TestAddressGroupsClient_Delete(t *testing.T) {
	tests := []TestDeleteOperation{
		{
			Name:         "existing group",
			ID:           "group-id",
			ExpectedPath: "/config/objects/v1/address-groups/group-id",
			StatusCode:   http.StatusOK,
		},
		{
			Name:         "missing group",
			ID:           "missing-id",
			ExpectedPath: "/config/objects/v1/address-groups/missing-id",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Object Not Present",
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, string) error {
		return c.AddressGroups().Delete
	})
}

func TestAddressGroupsClient_List_Filters(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "group-1", "name": "web-tier", "folder": "Shared", "static": []string{"web-1", "web-2"}, "tag": []string{"prod"}},
		{"id": "group-2", "name": "prod-hosts", "folder": "Shared", "dynamic": map[string]interface{}{"filter": "'prod' and 'web'"}},
		{"id": "group-3", "name": "db-tier", "folder": "All", "static": []string{"db-1"}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeListResponse(w, records, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	tests := []struct {
		name      string
		opts      *ccm.ListOptions
		wantNames []string
	}{
		{
			name:      "static groups",
			opts:      ccm.NewListOptions().WithFilter("types", []string{"static"}),
			wantNames: []string{"web-tier", "db-tier"},
		},
		{
			name:      "dynamic groups",
			opts:      ccm.NewListOptions().WithFilter("types", []string{"dynamic"}),
			wantNames: []string{"prod-hosts"},
		},
		{
			name:      "values matches static members",
			opts:      ccm.NewListOptions().WithFilter("values", []string{"web-2"}),
			wantNames: []string{"web-tier"},
		},
		{
			name:      "values matches dynamic filter expression",
			opts:      ccm.NewListOptions().WithFilter("values", []string{"'prod' and 'web'"}),
			wantNames: []string{"prod-hosts"},
		},
		{
			name:      "tags filter",
			opts:      ccm.NewListOptions().WithFilter("tags", []string{"prod"}),
			wantNames: []string{"web-tier"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			groups, err := client.AddressGroups().List(context.Background(), ccm.InFolder("Shared"), testCase.opts)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantNames, groupNames(groups))
		})
	}
}

func TestAddressGroupsClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/address-groups", r.URL.Path)
		assert.Equal(t, "dns", r.URL.Query().Get("snippet"))
		assert.Equal(t, "prod-hosts", r.URL.Query().Get("name"))

		writeListResponse(w, []map[string]interface{}{
			{"id": "group-id", "name": "prod-hosts", "snippet": "dns", "dynamic": map[string]interface{}{"filter": "'prod'"}},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	group, err := client.AddressGroups().Fetch(context.Background(), ccm.InSnippet("dns"), "prod-hosts")

	require.NoError(t, err)
	assert.Equal(t, "group-id", group.ID)
	require.NotNil(t, group.Dynamic)
	assert.Equal(t, "'prod'", group.Dynamic.Filter)
}
