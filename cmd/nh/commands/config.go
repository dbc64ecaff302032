package commands

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nerves-hub/nerveshub-go/internal/constants"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
	"github.com/nerves-hub/nerveshub-go/pkg/nhclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration, stored as YAML under the keys
// viper reads them back with.
type Config struct {
	Organization string `json:"org,omitempty"      yaml:"org,omitempty"`
	Product      string `json:"product,omitempty"  yaml:"product,omitempty"`
	Token        string `json:"token,omitempty"    yaml:"token,omitempty"`
	BaseURL      string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Cert         string `json:"cert,omitempty"     yaml:"cert,omitempty"`
	Key          string `json:"key,omitempty"      yaml:"key,omitempty"`
	CACert       string `json:"ca_cert,omitempty"  yaml:"ca_cert,omitempty"`
}

// loadConfig assembles the effective configuration from flags, environment
// variables, and the config file, in that precedence order.
func loadConfig() *Config {
	return &Config{
		Organization: viper.GetString("org"),
		Product:      viper.GetString("product"),
		Token:        viper.GetString("token"),
		BaseURL:      viper.GetString("base_url"),
		Cert:         viper.GetString("cert"),
		Key:          viper.GetString("key"),
		CACert:       viper.GetString("ca_cert"),
	}
}

func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".nerveshub")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateClient builds a NervesHub API client from the effective CLI
// configuration.
func CreateClient() (nerveshub.Client, error) {
	config, err := buildClientConfig()
	if err != nil {
		return nil, err
	}

	client, err := nhclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func buildClientConfig() (*nerveshub.Config, error) {
	cliConfig := loadConfig()

	if cliConfig.Organization == "" {
		return nil, constants.ErrNoOrganization
	}

	if cliConfig.Product == "" {
		return nil, constants.ErrNoProduct
	}

	credential, err := resolveCredential(cliConfig)
	if err != nil {
		return nil, err
	}

	config := &nerveshub.Config{
		BaseURL:      cliConfig.BaseURL,
		Organization: cliConfig.Organization,
		Product:      cliConfig.Product,
		Credential:   credential,
	}

	if cliConfig.CACert != "" {
		caCert, err := readPEMSetting(cliConfig.CACert)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}

		config.CACert = caCert
	}

	if viper.GetBool("debug") {
		config.Debug = true
		config.Logger = newDebugLogger()
	}

	return config, nil
}

// resolveCredential picks the credential form: a certificate pair when either
// half is configured, otherwise a token.
func resolveCredential(cliConfig *Config) (nerveshub.Credential, error) {
	if cliConfig.Cert != "" || cliConfig.Key != "" {
		certPEM, err := readPEMSetting(cliConfig.Cert)
		if err != nil {
			return nil, fmt.Errorf("reading client certificate: %w", err)
		}

		keyPEM, err := readPEMSetting(cliConfig.Key)
		if err != nil {
			return nil, fmt.Errorf("reading client key: %w", err)
		}

		return nerveshub.CertificateCredential{CertPEM: certPEM, KeyPEM: keyPEM}, nil
	}

	if cliConfig.Token != "" {
		return nerveshub.TokenCredential{Token: cliConfig.Token}, nil
	}

	return nil, constants.ErrNotAuthenticated
}

// readPEMSetting resolves a setting that may hold inline PEM, base64-encoded
// PEM, or a path to a PEM file.
func readPEMSetting(value string) ([]byte, error) {
	if value == "" {
		return nil, os.ErrNotExist
	}

	if strings.Contains(value, "-----BEGIN") {
		return []byte(value), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err == nil && bytes.Contains(decoded, []byte("-----BEGIN")) {
		return decoded, nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return nil, fmt.Errorf("reading PEM file: %w", err)
	}

	return data, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the nh CLI configuration persisted under ~/.nerveshub",
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
		Long:  "Display the effective configuration from flags, environment variables, and the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print the token itself, in any format.
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return unsetConfigValue(args[0])
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the config file and all persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get user home directory: %w", err)
				}

				configFile = filepath.Join(home, ".nerveshub", "config.yml")
			}

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			return outputConfigUpdateResult("Cleared", "all settings", "")
		},
	}
}

func setConfigValue(key, value string) error {
	config := readConfigFile()

	switch key {
	case "org":
		config.Organization = value
	case "product":
		config.Product = value
	case "base_url":
		config.BaseURL = value
	case "cert":
		config.Cert = value
	case "key":
		config.Key = value
	case "ca_cert":
		config.CACert = value
	case "token":
		return fmt.Errorf("%w, use 'nh login' instead", constants.ErrTokenNotConfigKey)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	err := saveConfig(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return outputConfigUpdateResult("Set", key, value)
}

func unsetConfigValue(key string) error {
	config := readConfigFile()

	switch key {
	case "org":
		config.Organization = ""
	case "product":
		config.Product = ""
	case "base_url":
		config.BaseURL = ""
	case "cert":
		config.Cert = ""
	case "key":
		config.Key = ""
	case "ca_cert":
		config.CACert = ""
	case "token":
		return fmt.Errorf("%w, use 'nh logout' instead", constants.ErrTokenNotConfigKey)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	err := saveConfig(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return outputConfigUpdateResult("Unset", key, "")
}

// readConfigFile reads the persisted config file alone, without flag or
// environment overrides, so set/unset never bake transient values into the
// file.
func readConfigFile() *Config {
	config := &Config{}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return config
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Organization", orDefault(config.Organization))
	_ = table.Append("Product", orDefault(config.Product))
	_ = table.Append("Base URL", orDefault(config.BaseURL))
	_ = table.Append("Token", orDefault(config.Token))
	_ = table.Append("Certificate", orDefault(config.Cert))
	_ = table.Append("Key", orDefault(config.Key))
	_ = table.Append("CA Certificate", orDefault(config.CACert))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render config table: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(action, key, value string) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(buildConfigResult(action, key, value))
	case constants.FormatYAML:
		return StandardYAMLRenderer(buildConfigResult(action, key, value))
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Action", action)
		_ = table.Append("Key", key)

		if value != "" {
			_ = table.Append("Value", value)
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render update results table: %w", err)
		}

		return nil
	}
}

func buildConfigResult(action, key, value string) map[string]string {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return result
}

// zapLogger adapts a zap.SugaredLogger to the nerveshub.Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newDebugLogger() nerveshub.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}

	return &zapLogger{sugar: logger.Sugar()}
}

func (l *zapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, flattenFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, flattenFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, flattenFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]interface{}) {
	l.sugar.Errorw(msg, flattenFields(fields)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}

	return args
}
