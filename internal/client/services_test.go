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

func serviceNames(services []ccm.Service) []string {
	names := make([]string, 0, len(services))
	for _, service := range services {
		names = append(names, service.Name)
	}

	return names
}

func TestServicesClient_Create(t *testing.T) {
	tests := []TestCreateOperation[ccm.ServiceCreate, ccm.Service]{
		{
			Name: "tcp service",
			Request: &ccm.ServiceCreate{
				Scope: ccm.InFolder("Shared"),
				Name:  "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443"},
				},
			},
			ExpectedPath: "/config/objects/v1/services",
			StatusCode:   http.StatusCreated,
			Response: &ccm.Service{
				ID:   "service-id",
				Name: "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443"},
				},
				Folder: "Shared",
			},
		},
		{
			Name: "udp service with timeout override",
			Request: &ccm.ServiceCreate{
				Scope: ccm.OnDevice("fw-edge-01"),
				Name:  "dns",
				Protocol: &ccm.ServiceProtocol{
					UDP: &ccm.ProtocolSpec{
						Port:     "53",
						Override: &ccm.ProtocolOverride{Timeout: 15},
					},
				},
			},
			ExpectedPath: "/config/objects/v1/services",
			StatusCode:   http.StatusCreated,
			Response: &ccm.Service{
				ID:   "service-id",
				Name: "dns",
				Protocol: &ccm.ServiceProtocol{
					UDP: &ccm.ProtocolSpec{
						Port:     "53",
						Override: &ccm.ProtocolOverride{Timeout: 15},
					},
				},
				Device: "fw-edge-01",
			},
		},
		{
			Name: "missing scope",
			Request: &ccm.ServiceCreate{
				Name: "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443"},
				},
			},
			ExpectedPath: "/config/objects/v1/services",
			StatusCode:   http.StatusCreated,
			WantErr:      true,
			ErrMessage:   "exactly one of folder, snippet, or device",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *ccm.ServiceCreate) (*ccm.Service, error) {
		return c.Services().Create
	})
}

func TestServicesClient_Get(t *testing.T) {
	tests := []TestGetOperation[ccm.Service]{
		{
			Name:         "existing service",
			ID:           "service-id",
			ExpectedPath: "/config/objects/v1/services/service-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.Service{
				ID:   "service-id",
				Name: "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443"},
				},
				Folder: "Shared",
			},
		},
		{
			Name:         "missing service",
			ID:           "missing-id",
			ExpectedPath: "/config/objects/v1/services/missing-id",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Object Not Present",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*ccm.Service, error) {
		return c.Services().Get
	})
}

func TestServicesClient_Update(t *testing.T) {
	tests := []TestUpdateOperation[ccm.ServiceUpdate, ccm.Service]{
		{
			Name: "change ports",
			ID:   "service-id",
			Request: &ccm.ServiceUpdate{
				Name: "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443,8443"},
				},
			},
			ExpectedPath: "/config/objects/v1/services/service-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.Service{
				ID:   "service-id",
				Name: "web-https",
				Protocol: &ccm.ServiceProtocol{
					TCP: &ccm.ProtocolSpec{Port: "443,8443"},
				},
				Folder: "Shared",
			},
		},
	}

	RunUpdateTests(t, tests, func(c *Client) func(context.Context, string, *ccm.ServiceUpdate) (*ccm.Service, error) {
		return c.Services().Update
	})
}

func TestServicesClient_Delete(t *testing.T) {
	tests := []TestDeleteOperation{
		{
			Name:         "existing service",
			ID:           "service-id",
			ExpectedPath: "/config/objects/v1/services/service-id",
			StatusCode:   http.StatusOK,
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, string) error {
		return c.Services().Delete
	})
}

func TestServicesClient_List_Filters(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "svc-1", "name": "web-https", "folder": "Shared", "protocol": map[string]interface{}{
			"tcp": map[string]interface{}{"port": "443"},
		}, "tag": []string{"prod"}},
		{"id": "svc-2", "name": "dns", "folder": "Shared", "protocol": map[string]interface{}{
			"udp": map[string]interface{}{"port": "53"},
		}},
		{"id": "svc-3", "name": "legacy", "folder": "Shared"},
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
			name:      "tcp services",
			opts:      ccm.NewListOptions().WithFilter("protocols", []string{"tcp"}),
			wantNames: []string{"web-https"},
		},
		{
			name:      "udp services",
			opts:      ccm.NewListOptions().WithFilter("protocols", []string{"udp"}),
			wantNames: []string{"dns"},
		},
		{
			name:      "either protocol",
			opts:      ccm.NewListOptions().WithFilter("protocols", []string{"tcp", "udp"}),
			wantNames: []string{"web-https", "dns"},
		},
		{
			name:      "tags filter",
			opts:      ccm.NewListOptions().WithFilter("tags", []string{"prod"}),
			wantNames: []string{"web-https"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			services, err := client.Services().List(context.Background(), ccm.InFolder("Shared"), testCase.opts)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantNames, serviceNames(services))
		})
	}
}

func TestServicesClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/services", r.URL.Path)
		assert.Equal(t, "Shared", r.URL.Query().Get("folder"))
		assert.Equal(t, "web-https", r.URL.Query().Get("name"))

		writeListResponse(w, []map[string]interface{}{
			{"id": "service-id", "name": "web-https", "folder": "Shared", "protocol": map[string]interface{}{
				"tcp": map[string]interface{}{"port": "443"},
			}},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	service, err := client.Services().Fetch(context.Background(), ccm.InFolder("Shared"), "web-https")

	require.NoError(t, err)
	assert.Equal(t, "service-id", service.ID)
	require.NotNil(t, service.Protocol)
	require.NotNil(t, service.Protocol.TCP)
	assert.Equal(t, "443", service.Protocol.TCP.Port)
}
