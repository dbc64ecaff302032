package constants

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Output formats.
const (
	// FormatJSON is the JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"
)

// Display constants.
const (
	// NotAvailable is displayed when a value is not available.
	NotAvailable = "N/A"

	// MaskedSecret is displayed in place of sensitive values.
	MaskedSecret = "***"

	// CheckMarkSymbol is displayed for enabled boolean values.
	CheckMarkSymbol = "✓"
)

// Firmware upload limits.
const (
	// MaxFirmwareSize is the largest firmware file the CLI will upload.
	MaxFirmwareSize = 512 * 1024 * 1024
)
