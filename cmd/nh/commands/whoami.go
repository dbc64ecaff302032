package commands

import (
	"fmt"
	"os"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display the authenticated user",
		Long:  "Display the account the configured credential authenticates as",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get authenticated user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func outputUser(user *nerveshub.User) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(user)
	case constants.FormatYAML:
		return StandardYAMLRenderer(user)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Email")
		_ = table.Append(user.Name, user.Email)
		_ = table.Render()

		return nil
	}
}
