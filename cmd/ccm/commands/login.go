package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
	"github.com/fivetwenty-io/ccm-client/pkg/ccmclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint     string
		clientID     string
		clientSecret string
		token        string
		scopes       []string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a configuration manager",
		Long:  "Authenticate with a configuration manager API endpoint and save the credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get API endpoint
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			if endpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = os.Stdout.WriteString("API endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return ErrEndpointRequired
			}

			// Client credentials flow: prompt for the secret when only the
			// ID was given
			if clientID != "" && clientSecret == "" && token == "" {
				_, _ = os.Stdout.WriteString("Client secret: ")

				byteSecret, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read client secret: %w", err)
				}

				clientSecret = string(byteSecret)

				_, _ = os.Stdout.WriteString("\n")
			}

			config := &ccm.Config{
				Endpoint:      endpoint,
				ClientID:      clientID,
				ClientSecret:  clientSecret,
				AccessToken:   token,
				Scopes:        scopes,
				SkipTLSVerify: viper.GetBool("skip_tls_verify"),
			}

			ctx := context.Background()

			// Verify the credentials before persisting anything
			err := verifyLogin(ctx, config)
			if err != nil {
				return err
			}

			saved := loadConfig()
			saved.Endpoint = endpoint
			saved.ClientID = clientID
			saved.ClientSecret = clientSecret
			saved.Token = token
			saved.Scopes = scopes

			err = saveConfigStruct(saved)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s\n", endpoint)

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "API endpoint URL")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVarP(&token, "token", "t", "", "access token (bypasses OAuth2)")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "OAuth2 scopes to request")

	return cmd
}

// verifyLogin exchanges credentials for a token by issuing one cheap
// request. With only an access token there is nothing to exchange; the token
// is checked by the listing call instead.
func verifyLogin(ctx context.Context, config *ccm.Config) error {
	client, err := ccmclient.New(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	_, err = client.Tags().List(ctx, ccm.InFolder("All"), nil)
	if err != nil && !ccm.IsNotFound(err) {
		return fmt.Errorf("failed to connect to API: %w", err)
	}

	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear saved credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.ClientID == "" && config.Token == "" {
				return ErrNotLoggedIn
			}

			config.ClientID = ""
			config.ClientSecret = ""
			config.Token = ""
			config.Scopes = nil

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Logged out\n")

			return nil
		},
	}
}
