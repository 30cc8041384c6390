package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
	"github.com/fivetwenty-io/ccm-client/pkg/ccmclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrEndpointRequired     = errors.New("API endpoint is required (use --endpoint or 'ccm login')")
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrConfigKeyUnknown     = errors.New("unknown configuration key")
	ErrAddressFormRequired  = errors.New("exactly one of --ip-netmask, --ip-range, --ip-wildcard, or --fqdn is required")
	ErrGroupFormRequired    = errors.New("exactly one of --static or --dynamic is required")
	ErrServiceProtoRequired = errors.New("exactly one of --tcp or --udp is required")
)

// CreateClient builds a client from the resolved CLI configuration.
func CreateClient(ctx context.Context) (ccm.Client, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	config := &ccm.Config{
		Endpoint:      endpoint,
		ClientID:      viper.GetString("client_id"),
		ClientSecret:  viper.GetString("client_secret"),
		AccessToken:   viper.GetString("token"),
		Scopes:        viper.GetStringSlice("scopes"),
		Debug:         viper.GetBool("debug"),
		SkipTLSVerify: viper.GetBool("skip_tls_verify"),
	}

	if config.Debug {
		config.Logger = &stderrLogger{}
	}

	client, err := ccmclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// stderrLogger writes client logs to stderr for --debug runs.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// scopeFlags holds the container selection flags shared by every resource
// command. Scope validation is left to the client so the CLI reports the
// same errors as the SDK.
type scopeFlags struct {
	folder  string
	snippet string
	device  string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.folder, "folder", "", "folder containing the objects")
	cmd.Flags().StringVar(&f.snippet, "snippet", "", "snippet containing the objects")
	cmd.Flags().StringVar(&f.device, "device", "", "device containing the objects")
}

func (f *scopeFlags) scope() ccm.Scope {
	return ccm.Scope{Folder: f.folder, Snippet: f.snippet, Device: f.device}
}

func (f *scopeFlags) isSet() bool {
	return f.folder != "" || f.snippet != "" || f.device != ""
}

// listFlags holds the client-side filtering flags shared by every list
// command.
type listFlags struct {
	scopeFlags

	exactMatch      bool
	excludeFolders  []string
	excludeSnippets []string
	excludeDevices  []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	f.scopeFlags.register(cmd)

	cmd.Flags().BoolVar(&f.exactMatch, "exact-match", false, "only objects defined directly in the container")
	cmd.Flags().StringSliceVar(&f.excludeFolders, "exclude-folders", nil, "drop objects defined in these folders")
	cmd.Flags().StringSliceVar(&f.excludeSnippets, "exclude-snippets", nil, "drop objects defined in these snippets")
	cmd.Flags().StringSliceVar(&f.excludeDevices, "exclude-devices", nil, "drop objects defined on these devices")
}

func (f *listFlags) options() *ccm.ListOptions {
	opts := ccm.NewListOptions().WithExactMatch(f.exactMatch)
	opts.ExcludeFolders = f.excludeFolders
	opts.ExcludeSnippets = f.excludeSnippets
	opts.ExcludeDevices = f.excludeDevices

	return opts
}

// titleCaser renders container names for table output ("folder" → "Folder").
var titleCaser = cases.Title(language.English)

// containerCell names the container a record lives in, for table rows.
func containerCell(folder, snippet, device string) string {
	switch {
	case folder != "":
		return titleCaser.String("folder") + ": " + folder
	case snippet != "":
		return titleCaser.String("snippet") + ": " + snippet
	case device != "":
		return titleCaser.String("device") + ": " + device
	default:
		return NotAvailable
	}
}

// listCell joins list values for a table cell, truncating long lists.
func listCell(values []string) string {
	if len(values) == 0 {
		return NotAvailable
	}

	if len(values) > constants.TableCellMaxItems {
		shown := strings.Join(values[:constants.TableCellMaxItems], ", ")

		return fmt.Sprintf("%s (+%d more)", shown, len(values)-constants.TableCellMaxItems)
	}

	return strings.Join(values, ", ")
}

// encodeJSON writes v to stdout as indented JSON.
func encodeJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// encodeYAML writes v to stdout as YAML.
func encodeYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}
