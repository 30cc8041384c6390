package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/ccm-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration persisted at ~/.ccm/config.yml.
type Config struct {
	Endpoint     string   `json:"endpoint,omitempty"      yaml:"endpoint,omitempty"`
	ClientID     string   `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Token        string   `json:"token,omitempty"         yaml:"token,omitempty"`
	Scopes       []string `json:"scopes,omitempty"        yaml:"scopes,omitempty"`

	Output        string `json:"output,omitempty"    yaml:"output,omitempty"`
	SkipTLSVerify bool   `json:"skip_tls_verify"     yaml:"skip_tls_verify"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage CCM CLI configuration stored in ~/.ccm/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print stored secrets
			display := *config
			if display.ClientSecret != "" {
				display.ClientSecret = constants.MaskedSecret
			}

			if display.Token != "" {
				display.Token = constants.MaskedSecret
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return encodeJSON(display)
			case OutputFormatYAML:
				return encodeYAML(display)
			default:
				return displayConfigTable(&display)
			}
		},
	}
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Setting", "Value")

	valueOr := func(value string) string {
		if value == "" {
			return NotAvailable
		}

		return value
	}

	_ = table.Append("Endpoint", valueOr(config.Endpoint))
	_ = table.Append("Client ID", valueOr(config.ClientID))
	_ = table.Append("Client Secret", valueOr(config.ClientSecret))
	_ = table.Append("Token", valueOr(config.Token))
	_ = table.Append("Scopes", listCell(config.Scopes))
	_ = table.Append("Output", valueOr(config.Output))
	_ = table.Append("Skip TLS Verify", fmt.Sprintf("%t", config.SkipTLSVerify))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value (endpoint, client-id, client-secret, token, output, skip-tls-verify)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := saveConfigStruct(&Config{})
			if err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Configuration cleared\n")

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "endpoint":
		config.Endpoint = value
	case "client-id", "client_id":
		config.ClientID = value
	case "client-secret", "client_secret":
		config.ClientSecret = value
	case "token":
		config.Token = value
	case "output":
		config.Output = value
	case "skip-tls-verify", "skip_tls_verify":
		config.SkipTLSVerify = value == "true"
	default:
		return fmt.Errorf("'%s': %w", key, ErrConfigKeyUnknown)
	}

	return nil
}

// loadConfig reads the persisted configuration through viper, so flag and
// environment overrides are already applied.
func loadConfig() *Config {
	return &Config{
		Endpoint:      viper.GetString("endpoint"),
		ClientID:      viper.GetString("client_id"),
		ClientSecret:  viper.GetString("client_secret"),
		Token:         viper.GetString("token"),
		Scopes:        viper.GetStringSlice("scopes"),
		Output:        viper.GetString("output"),
		SkipTLSVerify: viper.GetBool("skip_tls_verify"),
	}
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".ccm")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}
