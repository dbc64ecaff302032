package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// formatBool renders a boolean as a check mark column value.
func formatBool(value bool) string {
	if value {
		return constants.CheckMarkSymbol
	}

	return ""
}

// formatTags joins tags for table display.
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return constants.NotAvailable
	}

	return strings.Join(tags, ", ")
}

// formatTime renders an optional timestamp for table display.
func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

// orDefault substitutes a placeholder for empty table cells.
func orDefault(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
