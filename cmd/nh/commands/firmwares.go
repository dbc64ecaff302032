package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFirmwaresCommand creates the firmwares command group
func NewFirmwaresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "firmwares",
		Aliases: []string{"firmware", "fw"},
		Short:   "Manage firmware",
		Long:    "List, upload, and delete signed firmware for the configured product",
	}

	cmd.AddCommand(newFirmwaresListCommand())
	cmd.AddCommand(newFirmwaresUploadCommand())
	cmd.AddCommand(newFirmwaresDeleteCommand())

	return cmd
}

func newFirmwaresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List firmware",
		Long:  "List all firmware uploaded to the configured product",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			firmwares, err := client.Firmwares().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list firmware: %w", err)
			}

			return outputFirmwares(firmwares)
		},
	}
}

func outputFirmwares(firmwares []nerveshub.Firmware) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(firmwares)
	case constants.FormatYAML:
		return StandardYAMLRenderer(firmwares)
	default:
		if len(firmwares) == 0 {
			_, _ = os.Stdout.WriteString("No firmware found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("UUID", "Version", "Platform", "Architecture", "Author")

		for _, firmware := range firmwares {
			_ = table.Append(firmware.UUID,
				firmware.Version,
				orDefault(firmware.Platform),
				orDefault(firmware.Architecture),
				orDefault(firmware.Author))
		}

		_ = table.Render()

		return nil
	}
}

func newFirmwaresUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FIRMWARE_FILE",
		Short: "Upload firmware",
		Long:  "Upload a signed firmware file to the configured product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := openFirmwareFile(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			client, err := CreateClient()
			if err != nil {
				return err
			}

			firmware, err := client.Firmwares().Upload(cmd.Context(), file, filepath.Base(args[0]))
			if err != nil {
				return fmt.Errorf("failed to upload firmware: %w", err)
			}

			fmt.Printf("Firmware %s (version %s) uploaded\n", firmware.UUID, firmware.Version)

			return nil
		},
	}
}

// openFirmwareFile validates the upload candidate before any network traffic.
func openFirmwareFile(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading firmware file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q: %w", path, constants.ErrNotRegularFile)
	}

	if info.Size() > constants.MaxFirmwareSize {
		return nil, fmt.Errorf("%q: %w", path, constants.ErrFirmwareTooLarge)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening firmware file: %w", err)
	}

	return file, nil
}

func newFirmwaresDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FIRMWARE_UUID",
		Short: "Delete firmware",
		Long:  "Delete a firmware image from the configured product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Firmwares().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete firmware: %w", err)
			}

			fmt.Printf("Firmware %s deleted\n", args[0])

			return nil
		},
	}
}
