package ccm_test

import (
	"testing"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scope   ccm.Scope
		wantErr error
	}{
		{
			name:    "folder",
			scope:   ccm.Scope{Folder: "Shared"},
			wantErr: nil,
		},
		{
			name:    "snippet",
			scope:   ccm.Scope{Snippet: "dns"},
			wantErr: nil,
		},
		{
			name:    "device",
			scope:   ccm.Scope{Device: "fw-edge-01"},
			wantErr: nil,
		},
		{
			name:    "empty scope",
			scope:   ccm.Scope{},
			wantErr: ccm.ErrInvalidScope,
		},
		{
			name:    "folder and device",
			scope:   ccm.Scope{Folder: "Shared", Device: "fw-edge-01"},
			wantErr: ccm.ErrInvalidScope,
		},
		{
			name:    "all three containers",
			scope:   ccm.Scope{Folder: "a", Snippet: "b", Device: "c"},
			wantErr: ccm.ErrInvalidScope,
		},
		{
			name:    "blank snippet",
			scope:   ccm.Scope{Snippet: "   "},
			wantErr: ccm.ErrMissingScopeValue,
		},
		{
			name:    "blank folder",
			scope:   ccm.Scope{Folder: "\t"},
			wantErr: ccm.ErrMissingScopeValue,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.scope.Validate()

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScopeParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		scope     ccm.Scope
		wantKey   string
		wantValue string
	}{
		{
			name:      "folder",
			scope:     ccm.InFolder("Shared"),
			wantKey:   "folder",
			wantValue: "Shared",
		},
		{
			name:      "snippet",
			scope:     ccm.InSnippet("dns"),
			wantKey:   "snippet",
			wantValue: "dns",
		},
		{
			name:      "device",
			scope:     ccm.OnDevice("fw-edge-01"),
			wantKey:   "device",
			wantValue: "fw-edge-01",
		},
		{
			name:      "surrounding whitespace is trimmed",
			scope:     ccm.InFolder("  Shared  "),
			wantKey:   "folder",
			wantValue: "Shared",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, value, err := tt.scope.Param()
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}

	t.Run("invalid scope", func(t *testing.T) {
		t.Parallel()

		_, _, err := ccm.Scope{}.Param()
		require.ErrorIs(t, err, ccm.ErrInvalidScope)
	})
}

func TestScopeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "folder=Shared", ccm.InFolder("Shared").String())
	assert.Equal(t, "snippet=dns", ccm.InSnippet("dns").String())
	assert.Equal(t, "device=fw-edge-01", ccm.OnDevice("fw-edge-01").String())
	assert.Equal(t, "invalid scope", ccm.Scope{}.String())
}
