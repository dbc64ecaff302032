package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/nerves-hub/nerveshub-go/pkg/nhclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to NervesHub",
		Long:  "Verify an API token against NervesHub and save it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("token")
			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				fmt.Println()

				token = strings.TrimSpace(string(byteToken))
			}

			if token == "" {
				return constants.ErrTokenRequired
			}

			config := loadConfig()
			config.Token = token

			user, err := verifyToken(cmd.Context(), config)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s), token %s saved\n",
				user.Name, user.Email, constants.MaskedSecret)

			return nil
		},
	}

	return cmd
}

// verifyToken performs one authenticated call so a bad token is rejected
// before it is persisted.
func verifyToken(ctx context.Context, config *Config) (*nerveshub.User, error) {
	clientConfig := &nerveshub.Config{
		BaseURL:      config.BaseURL,
		Organization: config.Organization,
		Product:      config.Product,
		Credential:   nerveshub.TokenCredential{Token: config.Token},
	}

	// Login only needs the account endpoint, which is not tenant-scoped.
	if clientConfig.Organization == "" {
		clientConfig.Organization = "-"
	}

	if clientConfig.Product == "" {
		clientConfig.Product = "-"
	}

	if config.CACert != "" {
		caCert, err := readPEMSetting(config.CACert)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}

		clientConfig.CACert = caCert
	}

	client, err := nhclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	user, err := client.Users().Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	return user, nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from NervesHub",
		Long:  "Remove the saved API token from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token == "" {
				_, _ = os.Stdout.WriteString("Not logged in\n")

				return nil
			}

			config.Token = ""

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Logged out\n")

			return nil
		},
	}
}
