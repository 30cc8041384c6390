package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

func addressNames(addresses []ccm.Address) []string {
	names := make([]string, 0, len(addresses))
	for _, address := range addresses {
		names = append(names, address.Name)
	}

	return names
}

func TestAddressesClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req ccm.AddressCreate
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "web-server", req.Name)
		assert.Equal(t, "Shared", req.Folder)
		assert.Equal(t, "10.1.1.1/32", req.IPNetmask)

		address := ccm.Address{
			ID:        "addr-id",
			Name:      req.Name,
			IPNetmask: req.IPNetmask,
			Folder:    req.Folder,
			Tags:      req.Tags,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(address)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Create(context.Background(), &ccm.AddressCreate{
		Scope:     ccm.InFolder("Shared"),
		Name:      "web-server",
		IPNetmask: "10.1.1.1/32",
		Tags:      []string{"prod"},
	})

	require.NoError(t, err)
	assert.Equal(t, "addr-id", address.ID)
	assert.Equal(t, "web-server", address.Name)
	assert.Equal(t, "10.1.1.1/32", address.IPNetmask)
	assert.Equal(t, []string{"prod"}, address.Tags)
}

func TestAddressesClient_Create_InvalidScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Addresses().Create(context.Background(), &ccm.AddressCreate{
		Scope: ccm.Scope{Folder: "Shared", Snippet: "dns"},
		Name:  "web-server",
		FQDN:  "web.example.com",
	})
	require.ErrorIs(t, err, ccm.ErrInvalidScope)
}

func TestAddressesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses/addr-id", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		address := ccm.Address{
			ID:     "addr-id",
			Name:   "web-server",
			FQDN:   "web.example.com",
			Folder: "Shared",
		}

		json.NewEncoder(w).Encode(address)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Get(context.Background(), "addr-id")
	require.NoError(t, err)
	assert.Equal(t, "addr-id", address.ID)
	assert.Equal(t, "web-server", address.Name)
	assert.Equal(t, "web.example.com", address.FQDN)
}

func TestAddressesClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, "API_I00035", "Object Not Present")
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Addresses().Get(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, ccm.IsNotFound(err))
}

func TestAddressesClient_Get_MissingID(t *testing.T) {
	client := NewTestClient("https://ccm.example.com")

	_, err := client.Addresses().Get(context.Background(), "   ")
	require.ErrorIs(t, err, ccm.ErrMissingID)
}

func TestAddressesClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses/addr-id", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var req ccm.AddressUpdate
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "web-server", req.Name)
		assert.Equal(t, "10.1.1.2/32", req.IPNetmask)

		address := ccm.Address{
			ID:        "addr-id",
			Name:      req.Name,
			IPNetmask: req.IPNetmask,
			Folder:    "Shared",
		}

		json.NewEncoder(w).Encode(address)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Update(context.Background(), "addr-id", &ccm.AddressUpdate{
		Name:      "web-server",
		IPNetmask: "10.1.1.2/32",
	})

	require.NoError(t, err)
	assert.Equal(t, "10.1.1.2/32", address.IPNetmask)
}

func TestAddressesClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses/addr-id", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	err = client.Addresses().Delete(context.Background(), "addr-id")
	require.NoError(t, err)
}

func TestAddressesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "Shared", r.URL.Query().Get("folder"))
		assert.Equal(t, "2500", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))

		writeListResponse(w, []map[string]interface{}{
			{"id": "addr-1", "name": "web", "folder": "Shared", "ip_netmask": "10.1.0.0/24"},
			{"id": "addr-2", "name": "db", "folder": "Shared", "ip_range": "10.2.0.1-10.2.0.50"},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	addresses, err := client.Addresses().List(context.Background(), ccm.InFolder("Shared"), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"web", "db"}, addressNames(addresses))
	assert.Equal(t, "10.1.0.0/24", addresses[0].IPNetmask)
	assert.Equal(t, "10.2.0.1-10.2.0.50", addresses[1].IPRange)
}

//nolint:funlen
func TestAddressesClient_List_Pagination(t *testing.T) {
	records := make([]map[string]interface{}, 5)
	for i := range records {
		records[i] = map[string]interface{}{
			"id":         fmt.Sprintf("addr-%d", i),
			"name":       fmt.Sprintf("host-%d", i),
			"folder":     "Shared",
			"ip_netmask": fmt.Sprintf("10.0.0.%d/32", i),
		}
	}

	var offsets []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		require.NoError(t, err)
		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		require.NoError(t, err)

		offsets = append(offsets, offset)

		end := offset + limit
		if end > len(records) {
			end = len(records)
		}

		// Reported totals are bogus; the walk must stop on the short page.
		response := map[string]interface{}{
			"data":   records[offset:end],
			"total":  999,
			"limit":  limit,
			"offset": offset,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	require.NoError(t, client.Addresses().SetMaxLimit(2))

	addresses, err := client.Addresses().List(context.Background(), ccm.InFolder("Shared"), nil)

	require.NoError(t, err)
	assert.Len(t, addresses, 5)
	assert.Equal(t, []int{0, 2, 4}, offsets)
	assert.Equal(t, "addr-0", addresses[0].ID)
	assert.Equal(t, "addr-4", addresses[4].ID)
}

func TestAddressesClient_List_ResponseShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
	}{
		{
			name:      "wrapped list",
			body:      `{"data": [{"id": "addr-1", "name": "web", "folder": "Shared"}], "total": 1, "limit": 2500, "offset": 0}`,
			wantNames: []string{"web"},
		},
		{
			name:      "bare list",
			body:      `[{"id": "addr-1", "name": "web", "folder": "Shared"}, {"id": "addr-2", "name": "db", "folder": "Shared"}]`,
			wantNames: []string{"web", "db"},
		},
		{
			name:      "single object",
			body:      `{"id": "addr-1", "name": "web", "folder": "Shared", "fqdn": "web.example.com"}`,
			wantNames: []string{"web"},
		},
		{
			name:      "empty wrapped list",
			body:      `{"data": [], "total": 0, "limit": 2500, "offset": 0}`,
			wantNames: []string{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, testCase.body)
			}))
			defer server.Close()

			client, err := New(&ccm.Config{Endpoint: server.URL})
			require.NoError(t, err)

			addresses, err := client.Addresses().List(context.Background(), ccm.InFolder("Shared"), nil)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantNames, addressNames(addresses))
		})
	}
}

func TestAddressesClient_List_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `"not an envelope"`)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Addresses().List(context.Background(), ccm.InFolder("Shared"), nil)
	require.ErrorIs(t, err, ccm.ErrMalformedResponse)
}

func TestAddressesClient_List_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusInternalServerError, "E007", "Internal Error")
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Addresses().List(context.Background(), ccm.InFolder("Shared"), nil)
	require.Error(t, err)

	var responseErr *ccm.ResponseError

	require.ErrorAs(t, err, &responseErr)
	assert.Equal(t, http.StatusInternalServerError, responseErr.StatusCode)
}

func TestAddressesClient_List_InvalidScope(t *testing.T) {
	client := NewTestClient("https://ccm.example.com")

	_, err := client.Addresses().List(context.Background(), ccm.Scope{}, nil)
	require.ErrorIs(t, err, ccm.ErrInvalidScope)
}

//nolint:funlen
func TestAddressesClient_List_Filters(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "addr-1", "name": "web", "folder": "Shared", "ip_netmask": "10.1.0.0/24", "tag": []string{"prod"}},
		{"id": "addr-2", "name": "db", "folder": "Shared", "ip_range": "10.2.0.1-10.2.0.50", "tag": []string{"staging"}},
		{"id": "addr-3", "name": "cdn", "folder": "All", "fqdn": "cdn.example.com"},
		{"id": "addr-4", "name": "edge", "folder": "Shared", "ip_wildcard": "10.20.1.0/0.0.248.255", "tag": "prod"},
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
		wantErr   error
	}{
		{
			name:      "no options",
			opts:      nil,
			wantNames: []string{"web", "db", "cdn", "edge"},
		},
		{
			name:      "exact match drops inherited records",
			opts:      ccm.NewListOptions().WithExactMatch(true),
			wantNames: []string{"web", "db", "edge"},
		},
		{
			name:      "exclude folders",
			opts:      ccm.NewListOptions().WithExcludeFolders("All"),
			wantNames: []string{"web", "db", "edge"},
		},
		{
			name:      "types filter",
			opts:      ccm.NewListOptions().WithFilter("types", []string{"ip-netmask", "fqdn"}),
			wantNames: []string{"web", "cdn"},
		},
		{
			name:      "values filter",
			opts:      ccm.NewListOptions().WithFilter("values", []string{"10.2.0.1-10.2.0.50"}),
			wantNames: []string{"db"},
		},
		{
			name:      "tags filter matches bare string tags",
			opts:      ccm.NewListOptions().WithFilter("tags", []string{"prod"}),
			wantNames: []string{"web", "edge"},
		},
		{
			name:      "empty filter list matches nothing",
			opts:      ccm.NewListOptions().WithFilter("types", []string{}),
			wantNames: []string{},
		},
		{
			name:      "combined options",
			opts:      ccm.NewListOptions().WithExactMatch(true).WithFilter("tags", []string{"prod"}),
			wantNames: []string{"web", "edge"},
		},
		{
			name:    "unknown filter key",
			opts:    ccm.NewListOptions().WithFilter("regions", []string{"us"}),
			wantErr: ccm.ErrInvalidFilterValue,
		},
		{
			name:    "wrong filter value type",
			opts:    ccm.NewListOptions().WithFilter("types", 42),
			wantErr: ccm.ErrInvalidFilterValue,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			addresses, err := client.Addresses().List(context.Background(), ccm.InFolder("Shared"), testCase.opts)

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantNames, addressNames(addresses))
		})
	}
}

func TestAddressesClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/objects/v1/addresses", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "Shared", r.URL.Query().Get("folder"))
		assert.Equal(t, "web-server", r.URL.Query().Get("name"))

		writeListResponse(w, []map[string]interface{}{
			{"id": "addr-id", "name": "web-server", "folder": "Shared", "ip_netmask": "10.1.1.1/32"},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Fetch(context.Background(), ccm.InFolder("Shared"), "web-server")

	require.NoError(t, err)
	assert.Equal(t, "addr-id", address.ID)
	assert.Equal(t, "web-server", address.Name)
	assert.Equal(t, "10.1.1.1/32", address.IPNetmask)
}

func TestAddressesClient_Fetch_PicksNamedRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Servers may return loose name matches; resolution is exact.
		writeListResponse(w, []map[string]interface{}{
			{"id": "addr-other", "name": "web-server-backup", "folder": "Shared"},
			{"id": "addr-1", "name": "web-server", "folder": "Shared"},
			{"id": "addr-2", "name": "web-server", "folder": "All"},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Fetch(context.Background(), ccm.InFolder("Shared"), "web-server")

	require.NoError(t, err)
	assert.Equal(t, "addr-1", address.ID)
}

func TestAddressesClient_Fetch_SingleObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := ccm.Address{
			ID:     "addr-id",
			Name:   "web-server",
			Folder: "Shared",
		}

		json.NewEncoder(w).Encode(address)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	address, err := client.Addresses().Fetch(context.Background(), ccm.InFolder("Shared"), "web-server")

	require.NoError(t, err)
	assert.Equal(t, "addr-id", address.ID)
}

func TestAddressesClient_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeListResponse(w, []map[string]interface{}{}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Addresses().Fetch(context.Background(), ccm.InFolder("Shared"), "web-server")
	require.ErrorIs(t, err, ccm.ErrNotFound)
	assert.Contains(t, err.Error(), "web-server")
}

func TestAddressesClient_Fetch_MissingName(t *testing.T) {
	client := NewTestClient("https://ccm.example.com")

	_, err := client.Addresses().Fetch(context.Background(), ccm.InFolder("Shared"), "")
	require.ErrorIs(t, err, ccm.ErrMissingName)
}

func TestAddressesClient_MaxLimit(t *testing.T) {
	client := NewTestClient("https://ccm.example.com")

	assert.Equal(t, ccm.DefaultPageSize, client.Addresses().MaxLimit())

	require.NoError(t, client.Addresses().SetMaxLimit(100))
	assert.Equal(t, 100, client.Addresses().MaxLimit())

	err := client.Addresses().SetMaxLimit(0)
	require.ErrorIs(t, err, ccm.ErrInvalidPageSize)

	err = client.Addresses().SetMaxLimit(ccm.MaxPageSize + 1)
	require.ErrorIs(t, err, ccm.ErrInvalidPageSize)
}
