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

func ruleNames(rules []ccm.SecurityRule) []string {
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name)
	}

	return names
}

func TestSecurityRulesClient_Create(t *testing.T) {
	tests := []TestCreateOperation[ccm.SecurityRuleCreate, ccm.SecurityRule]{
		{
			Name: "allow rule",
			Request: &ccm.SecurityRuleCreate{
				Scope:       ccm.InFolder("Shared"),
				Name:        "allow-web",
				Action:      "allow",
				From:        []string{"trust"},
				To:          []string{"untrust"},
				Source:      []string{"any"},
				Destination: []string{"web-servers"},
				Service:     []string{"web-https"},
			},
			ExpectedPath: "/config/security/v1/security-rules",
			StatusCode:   http.StatusCreated,
			Response: &ccm.SecurityRule{
				ID:     "rule-id",
				Name:   "allow-web",
				Action: "allow",
				Folder: "Shared",
			},
		},
		{
			Name: "missing scope",
			Request: &ccm.SecurityRuleCreate{
				Name:   "allow-web",
				Action: "allow",
			},
			ExpectedPath: "/config/security/v1/security-rules",
			StatusCode:   http.StatusCreated,
			WantErr:      true,
			ErrMessage:   "exactly one of folder, snippet, or device",
		},
	}

	RunCreateTests(t, tests, func(c *Client) func(context.Context, *ccm.SecurityRuleCreate) (*ccm.SecurityRule, error) {
		return c.SecurityRules().Create
	})
}

func TestSecurityRulesClient_Get(t *testing.T) {
	tests := []TestGetOperation[ccm.SecurityRule]{
		{
			Name:         "existing rule",
			ID:           "rule-id",
			ExpectedPath: "/config/security/v1/security-rules/rule-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.SecurityRule{
				ID:     "rule-id",
				Name:   "allow-web",
				Action: "allow",
				Folder: "Shared",
			},
		},
		{
			Name:         "missing rule",
			ID:           "missing-id",
			ExpectedPath: "/config/security/v1/security-rules/missing-id",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Object Not Present",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*ccm.SecurityRule, error) {
		return c.SecurityRules().Get
	})
}

func TestSecurityRulesClient_Update(t *testing.T) {
	tests := []TestUpdateOperation[ccm.SecurityRuleUpdate, ccm.SecurityRule]{
		{
			Name: "disable rule",
			ID:   "rule-id",
			Request: &ccm.SecurityRuleUpdate{
				Name:     "allow-web",
				Action:   "allow",
				Disabled: true,
			},
			ExpectedPath: "/config/security/v1/security-rules/rule-id",
			StatusCode:   http.StatusOK,
			Response: &ccm.SecurityRule{
				ID:       "rule-id",
				Name:     "allow-web",
				Action:   "allow",
				Disabled: true,
				Folder:   "Shared",
			},
		},
	}

	RunUpdateTests(t, tests, func(c *Client) func(context.Context, string, *ccm.SecurityRuleUpdate) (*ccm.SecurityRule, error) {
		return c.SecurityRules().Update
	})
}

func TestSecurityRulesClient_Delete(t *testing.T) {
	tests := []TestDeleteOperation{
		{
			Name:         "existing rule",
			ID:           "rule-id",
			ExpectedPath: "/config/security/v1/security-rules/rule-id",
			StatusCode:   http.StatusOK,
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, string) error {
		return c.SecurityRules().Delete
	})
}

//nolint:funlen
func TestSecurityRulesClient_List_Filters(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "rule-1", "name": "allow-web", "folder": "Shared", "action": "allow", "tag": []string{"prod"}},
		{"id": "rule-2", "name": "deny-telnet", "folder": "Shared", "action": "deny", "disabled": true},
		{"id": "rule-3", "name": "allow-dns", "folder": "Shared", "action": "allow", "disabled": false},
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
			name:      "allow rules",
			opts:      ccm.NewListOptions().WithFilter("action", []string{"allow"}),
			wantNames: []string{"allow-web", "allow-dns"},
		},
		{
			name:      "deny rules",
			opts:      ccm.NewListOptions().WithFilter("action", []string{"deny"}),
			wantNames: []string{"deny-telnet"},
		},
		{
			name:      "disabled rules",
			opts:      ccm.NewListOptions().WithFilter("disabled", true),
			wantNames: []string{"deny-telnet"},
		},
		{
			name:      "enabled rules include records without the field",
			opts:      ccm.NewListOptions().WithFilter("disabled", false),
			wantNames: []string{"allow-web", "allow-dns"},
		},
		{
			name:      "tags filter",
			opts:      ccm.NewListOptions().WithFilter("tags", []string{"prod"}),
			wantNames: []string{"allow-web"},
		},
		{
			name:    "disabled takes a bool",
			opts:    ccm.NewListOptions().WithFilter("disabled", "yes"),
			wantErr: ccm.ErrInvalidFilterValue,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rules, err := client.SecurityRules().List(context.Background(), ccm.InFolder("Shared"), testCase.opts)

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantNames, ruleNames(rules))
		})
	}
}

func TestSecurityRulesClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/security/v1/security-rules", r.URL.Path)
		assert.Equal(t, "Shared", r.URL.Query().Get("folder"))
		assert.Equal(t, "allow-web", r.URL.Query().Get("name"))

		writeListResponse(w, []map[string]interface{}{
			{"id": "rule-id", "name": "allow-web", "folder": "Shared", "action": "allow"},
		}, 2500, 0)
	}))
	defer server.Close()

	client, err := New(&ccm.Config{Endpoint: server.URL})
	require.NoError(t, err)

	rule, err := client.SecurityRules().Fetch(context.Background(), ccm.InFolder("Shared"), "allow-web")

	require.NoError(t, err)
	assert.Equal(t, "rule-id", rule.ID)
	assert.Equal(t, "allow", rule.Action)
}
