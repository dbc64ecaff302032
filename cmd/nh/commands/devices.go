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

// NewDevicesCommand creates the devices command group
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"device"},
		Short:   "Manage devices",
		Long:    "List, register, update, and delete devices and their certificates",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesGetCommand())
	cmd.AddCommand(newDevicesCreateCommand())
	cmd.AddCommand(newDevicesUpdateCommand())
	cmd.AddCommand(newDevicesDeleteCommand())
	cmd.AddCommand(newDevicesCertsCommand())

	return cmd
}

func newDevicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Long:  "List all devices registered under the configured product",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			devices, err := client.Devices().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			return outputDevices(devices)
		},
	}
}

func outputDevices(devices []nerveshub.Device) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(devices)
	case constants.FormatYAML:
		return StandardYAMLRenderer(devices)
	default:
		return renderDeviceTable(devices)
	}
}

func renderDeviceTable(devices []nerveshub.Device) error {
	if len(devices) == 0 {
		_, _ = os.Stdout.WriteString("No devices found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Identifier", "Version", "Status", "Online", "Tags", "Last Seen")

	for _, device := range devices {
		_ = table.Append(device.Identifier,
			orDefault(device.Version),
			orDefault(device.Status),
			formatBool(device.Online),
			formatTags(device.Tags),
			formatTime(device.LastCommunication))
	}

	_ = table.Render()

	return nil
}

func newDevicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get IDENTIFIER",
		Short: "Get device details",
		Long:  "Display detailed information about a specific device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			device, err := client.Devices().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get device: %w", err)
			}

			return outputDevice(device)
		},
	}
}

func outputDevice(device *nerveshub.Device) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(device)
	case constants.FormatYAML:
		return StandardYAMLRenderer(device)
	default:
		return renderDeviceDetail(device)
	}
}

func renderDeviceDetail(device *nerveshub.Device) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Identifier", device.Identifier)
	_ = table.Append("Description", orDefault(device.Description))
	_ = table.Append("Tags", formatTags(device.Tags))
	_ = table.Append("Version", orDefault(device.Version))
	_ = table.Append("Status", orDefault(device.Status))
	_ = table.Append("Online", formatBool(device.Online))
	_ = table.Append("Updates Enabled", formatBool(device.UpdatesEnabled))
	_ = table.Append("Last Seen", formatTime(device.LastCommunication))

	if device.FirmwareMetadata != nil {
		_ = table.Append("Firmware UUID", device.FirmwareMetadata.UUID)
		_ = table.Append("Firmware Version", orDefault(device.FirmwareMetadata.Version))
		_ = table.Append("Platform", orDefault(device.FirmwareMetadata.Platform))
		_ = table.Append("Architecture", orDefault(device.FirmwareMetadata.Architecture))
	}

	_ = table.Render()

	return nil
}

func newDevicesCreateCommand() *cobra.Command {
	var (
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create IDENTIFIER",
		Short: "Register a new device",
		Long:  "Register a new device under the configured product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			device, err := client.Devices().Create(cmd.Context(), &nerveshub.CreateDeviceRequest{
				Identifier:  args[0],
				Description: description,
				Tags:        tags,
			})
			if err != nil {
				return fmt.Errorf("failed to create device: %w", err)
			}

			fmt.Printf("Device %s created\n", device.Identifier)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "device description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "device tag (repeatable)")

	return cmd
}

func newDevicesUpdateCommand() *cobra.Command {
	var (
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update IDENTIFIER",
		Short: "Update a device",
		Long:  "Update the description or tags of an existing device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &nerveshub.UpdateDeviceRequest{}
			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			if cmd.Flags().Changed("tag") {
				request.Tags = tags
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			device, err := client.Devices().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update device: %w", err)
			}

			fmt.Printf("Device %s updated\n", device.Identifier)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "device description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "device tag (repeatable)")

	return cmd
}

func newDevicesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete IDENTIFIER",
		Short: "Delete a device",
		Long:  "Delete a device from the configured product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Devices().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete device: %w", err)
			}

			fmt.Printf("Device %s deleted\n", args[0])

			return nil
		},
	}
}

func newDevicesCertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "certs",
		Aliases: []string{"certificates"},
		Short:   "Manage device certificates",
		Long:    "List and register client certificates for a device",
	}

	cmd.AddCommand(newDevicesCertsListCommand())
	cmd.AddCommand(newDevicesCertsCreateCommand())

	return cmd
}

func newDevicesCertsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list IDENTIFIER",
		Short: "List device certificates",
		Long:  "List the client certificates registered for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			certs, err := client.Devices().ListCertificates(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list device certificates: %w", err)
			}

			return outputDeviceCertificates(certs)
		},
	}
}

func outputDeviceCertificates(certs []nerveshub.DeviceCertificate) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(certs)
	case constants.FormatYAML:
		return StandardYAMLRenderer(certs)
	default:
		if len(certs) == 0 {
			_, _ = os.Stdout.WriteString("No certificates found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Serial", "Not Before", "Not After")

		for _, cert := range certs {
			_ = table.Append(cert.Serial,
				cert.NotBefore.Format("2006-01-02"),
				cert.NotAfter.Format("2006-01-02"))
		}

		_ = table.Render()

		return nil
	}
}

func newDevicesCertsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create IDENTIFIER CERT_FILE",
		Short: "Register a device certificate",
		Long:  "Register a PEM client certificate for a device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			certPEM, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading certificate file: %w", err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			cert, err := client.Devices().CreateCertificate(cmd.Context(), args[0], certPEM)
			if err != nil {
				return fmt.Errorf("failed to create device certificate: %w", err)
			}

			fmt.Printf("Certificate %s registered for device %s\n", cert.Serial, args[0])

			return nil
		},
	}
}
