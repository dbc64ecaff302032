//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests. The suite runs the
// nh binary against a live NervesHub server and is skipped entirely unless
// the NH_INTEGRATION_* environment variables are set.
type TestConfig struct {
	BaseURL      string
	Token        string
	Organization string
	Product      string
	BinaryPath   string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BaseURL:      os.Getenv("NH_INTEGRATION_URL"),
		Token:        os.Getenv("NH_INTEGRATION_TOKEN"),
		Organization: os.Getenv("NH_INTEGRATION_ORG"),
		Product:      os.Getenv("NH_INTEGRATION_PRODUCT"),
		BinaryPath:   getBinaryPath(),
		Verbose:      os.Getenv("NH_INTEGRATION_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the nh binary.
func getBinaryPath() string {
	if path := os.Getenv("NH_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../nh",
		"./nh",
		"../nh",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "nh" // Fallback to PATH
}

// SkipIfMissingConfig skips the test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.BaseURL == "" {
		t.Skip("NH_INTEGRATION_URL not set, skipping integration test")
	}

	if config.Token == "" {
		t.Skip("NH_INTEGRATION_TOKEN not set, skipping integration test")
	}

	if config.Organization == "" || config.Product == "" {
		t.Skip("NH_INTEGRATION_ORG or NH_INTEGRATION_PRODUCT not set, skipping integration test")
	}
}

// CommandRunner provides utilities for running nh commands.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an nh command with the configured credentials injected
// through the environment and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	env := []string{
		"NERVES_HUB_BASE_URL=" + runner.config.BaseURL,
		"NERVES_HUB_TOKEN=" + runner.config.Token,
		"NERVES_HUB_ORG=" + runner.config.Organization,
		"NERVES_HUB_PRODUCT=" + runner.config.Product,
	}

	return runner.runWithEnv(env, args...)
}

// RunUnauthenticated executes an nh command with credentials stripped and
// HOME pointed at an empty directory, so neither the environment nor a
// developer's config file can supply a token.
func (runner *CommandRunner) RunUnauthenticated(args ...string) (stdout, stderr string, err error) {
	env := []string{
		"NERVES_HUB_BASE_URL=" + runner.config.BaseURL,
		"NERVES_HUB_ORG=" + runner.config.Organization,
		"NERVES_HUB_PRODUCT=" + runner.config.Product,
		"HOME=" + runner.t.TempDir(),
	}

	return runner.runWithEnv(env, args...)
}

func (runner *CommandRunner) runWithEnv(env []string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)

	// Ambient NERVES_HUB_* values must not leak into the run.
	base := make([]string, 0, len(os.Environ()))
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "NERVES_HUB_") {
			continue
		}

		base = append(base, entry)
	}

	cmd.Env = append(base, env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupResource attempts to delete a test resource.
func (runner *CommandRunner) CleanupResource(resourceType, name string) {
	var args []string
	switch resourceType {
	case "device":
		args = []string{"devices", "delete", name}
	case "deployment":
		args = []string{"deployments", "delete", name}
	case "product":
		args = []string{"products", "delete", name}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, name, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output looks like JSON.
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output looks like YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
