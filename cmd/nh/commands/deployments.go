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

// NewDeploymentsCommand creates the deployments command group
func NewDeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"deployment"},
		Short:   "Manage deployments",
		Long:    "List, create, update, and delete firmware deployments for the configured product",
	}

	cmd.AddCommand(newDeploymentsListCommand())
	cmd.AddCommand(newDeploymentsGetCommand())
	cmd.AddCommand(newDeploymentsCreateCommand())
	cmd.AddCommand(newDeploymentsUpdateCommand())
	cmd.AddCommand(newDeploymentsDeleteCommand())

	return cmd
}

func newDeploymentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		Long:  "List all deployments for the configured product",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			deployments, err := client.Deployments().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list deployments: %w", err)
			}

			return outputDeployments(deployments)
		},
	}
}

func outputDeployments(deployments []nerveshub.Deployment) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(deployments)
	case constants.FormatYAML:
		return StandardYAMLRenderer(deployments)
	default:
		return renderDeploymentTable(deployments)
	}
}

func renderDeploymentTable(deployments []nerveshub.Deployment) error {
	if len(deployments) == 0 {
		_, _ = os.Stdout.WriteString("No deployments found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Firmware UUID", "Active", "State", "Version", "Tags")

	for _, deployment := range deployments {
		_ = table.Append(deployment.Name,
			deployment.FirmwareUUID,
			formatBool(deployment.IsActive),
			orDefault(deployment.State),
			orDefault(deployment.Conditions.Version),
			formatTags(deployment.Conditions.Tags))
	}

	_ = table.Render()

	return nil
}

func newDeploymentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEPLOYMENT_NAME",
		Short: "Get deployment details",
		Long:  "Display detailed information about a specific deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get deployment: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(deployment)
			case constants.FormatYAML:
				return StandardYAMLRenderer(deployment)
			default:
				return renderDeploymentTable([]nerveshub.Deployment{*deployment})
			}
		},
	}
}

func newDeploymentsCreateCommand() *cobra.Command {
	var (
		firmwareUUID string
		active       bool
		version      string
		tags         []string
	)

	cmd := &cobra.Command{
		Use:   "create DEPLOYMENT_NAME",
		Short: "Create a new deployment",
		Long:  "Create a firmware deployment targeting devices by tags and version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Create(cmd.Context(), &nerveshub.CreateDeploymentRequest{
				Name:         args[0],
				FirmwareUUID: firmwareUUID,
				IsActive:     active,
				Conditions: nerveshub.DeploymentConditions{
					Tags:    tags,
					Version: version,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create deployment: %w", err)
			}

			fmt.Printf("Deployment %s created\n", deployment.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&firmwareUUID, "firmware", "", "firmware UUID to deploy")
	cmd.Flags().BoolVar(&active, "active", false, "activate the deployment immediately")
	cmd.Flags().StringVar(&version, "version", "", "version requirement devices must match")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "device tag the deployment targets (repeatable)")
	_ = cmd.MarkFlagRequired("firmware")

	return cmd
}

func newDeploymentsUpdateCommand() *cobra.Command {
	var (
		firmwareUUID string
		active       bool
		version      string
		tags         []string
	)

	cmd := &cobra.Command{
		Use:   "update DEPLOYMENT_NAME",
		Short: "Update a deployment",
		Long:  "Update the firmware, activation state, or conditions of a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &nerveshub.UpdateDeploymentRequest{}
			if cmd.Flags().Changed("firmware") {
				request.FirmwareUUID = &firmwareUUID
			}

			if cmd.Flags().Changed("active") {
				request.IsActive = &active
			}

			if cmd.Flags().Changed("version") || cmd.Flags().Changed("tag") {
				request.Conditions = &nerveshub.DeploymentConditions{
					Tags:    tags,
					Version: version,
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update deployment: %w", err)
			}

			fmt.Printf("Deployment %s updated\n", deployment.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&firmwareUUID, "firmware", "", "firmware UUID to deploy")
	cmd.Flags().BoolVar(&active, "active", false, "activate or pause the deployment")
	cmd.Flags().StringVar(&version, "version", "", "version requirement devices must match")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "device tag the deployment targets (repeatable)")

	return cmd
}

func newDeploymentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DEPLOYMENT_NAME",
		Short: "Delete a deployment",
		Long:  "Delete a deployment from the configured product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Deployments().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete deployment: %w", err)
			}

			fmt.Printf("Deployment %s deleted\n", args[0])

			return nil
		},
	}
}
