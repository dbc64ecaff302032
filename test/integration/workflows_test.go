//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeviceWorkflow_CompleteLifecycle registers a device, reads it back,
// retags it, and deletes it again.
func TestDeviceWorkflow_CompleteLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	identifier := GenerateTestName("itest-device")

	defer runner.CleanupResource("device", identifier)

	// 1. Register the device
	stdout, stderr, err := runner.Run("devices", "create", identifier,
		"--description", "integration test device",
		"--tag", "integration")
	require.NoError(t, err, "Failed to create device: %s", stderr)
	assert.Contains(t, stdout, identifier)

	// 2. Read it back with JSON output
	stdout, stderr, err = runner.Run("devices", "get", identifier, "--output", "json")
	require.NoError(t, err, "Failed to get device with JSON output: %s", stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, identifier)
	assert.Contains(t, stdout, "integration")

	// 3. Retag the device
	stdout, stderr, err = runner.Run("devices", "update", identifier,
		"--tag", "integration",
		"--tag", "canary")
	require.NoError(t, err, "Failed to update device: %s", stderr)

	// 4. Verify the update
	stdout, stderr, err = runner.Run("devices", "get", identifier, "--output", "json")
	require.NoError(t, err, "Failed to get updated device: %s", stderr)
	assert.Contains(t, stdout, "canary")

	// 5. The device shows up in the listing
	stdout, stderr, err = runner.Run("devices", "list", "--output", "json")
	require.NoError(t, err, "Failed to list devices: %s", stderr)
	assert.Contains(t, stdout, identifier)

	// 6. Delete the device
	stdout, stderr, err = runner.Run("devices", "delete", identifier)
	require.NoError(t, err, "Failed to delete device: %s", stderr)
	assert.Contains(t, stdout, "deleted")

	// 7. Reading it again fails
	_, _, err = runner.Run("devices", "get", identifier)
	assert.Error(t, err, "Expected error reading a deleted device")
}

// TestDeploymentWorkflow_FirmwareRollout drives a deployment through its
// lifecycle against a firmware already uploaded to the product.
func TestDeploymentWorkflow_FirmwareRollout(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	// A rollout needs a firmware to point at; use whatever the product has.
	stdout, stderr, err := runner.Run("firmwares", "list", "--output", "json")
	require.NoError(t, err, "Failed to list firmwares: %s", stderr)

	var firmwares []struct {
		UUID string `json:"uuid"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &firmwares))

	if len(firmwares) == 0 {
		t.Skip("No firmware uploaded for the product, skipping deployment workflow")
	}

	firmwareUUID := firmwares[0].UUID
	name := GenerateTestName("itest-rollout")

	defer runner.CleanupResource("deployment", name)

	// 1. Create an inactive deployment targeting the integration tag
	stdout, stderr, err = runner.Run("deployments", "create", name,
		"--firmware", firmwareUUID,
		"--tag", "integration")
	require.NoError(t, err, "Failed to create deployment: %s", stderr)
	assert.Contains(t, stdout, name)

	// 2. Read it back
	stdout, stderr, err = runner.Run("deployments", "get", name, "--output", "json")
	require.NoError(t, err, "Failed to get deployment: %s", stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, firmwareUUID)

	// 3. Narrow the conditions
	stdout, stderr, err = runner.Run("deployments", "update", name,
		"--tag", "integration",
		"--tag", "canary")
	require.NoError(t, err, "Failed to update deployment: %s", stderr)

	// 4. Verify the update
	stdout, stderr, err = runner.Run("deployments", "get", name, "--output", "json")
	require.NoError(t, err, "Failed to get updated deployment: %s", stderr)
	assert.Contains(t, stdout, "canary")

	// 5. Delete the deployment
	stdout, stderr, err = runner.Run("deployments", "delete", name)
	require.NoError(t, err, "Failed to delete deployment: %s", stderr)
	assert.Contains(t, stdout, "deleted")
}

// TestWorkflow_OutputFormats checks every output format renders.
func TestWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	formats := []string{"table", "json", "yaml"}

	for _, format := range formats {
		t.Run(fmt.Sprintf("whoami_%s_format", format), func(t *testing.T) {
			stdout, stderr, err := runner.Run("whoami", "--output", format)
			require.NoError(t, err, "Failed to run whoami with %s format: %s", format, stderr)

			switch format {
			case "json":
				AssertJSONOutput(t, stdout)
			case "yaml":
				AssertYAMLOutput(t, stdout)
			case "table":
				assert.NotEmpty(t, stdout)
			}
		})
	}
}

// TestWorkflow_ErrorScenarios exercises error handling against the real
// server.
func TestWorkflow_ErrorScenarios(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	testCases := []struct {
		name            string
		args            []string
		unauthenticated bool
		errorText       string
	}{
		{
			name:            "list devices without credentials",
			args:            []string{"devices", "list"},
			unauthenticated: true,
			errorText:       "not authenticated",
		},
		{
			name:            "whoami without credentials",
			args:            []string{"whoami"},
			unauthenticated: true,
			errorText:       "not authenticated",
		},
		{
			name:      "get non-existent device",
			args:      []string{"devices", "get", "no-such-device-12345"},
			errorText: "failed to get device",
		},
		{
			name:      "get non-existent deployment",
			args:      []string{"deployments", "get", "no-such-deployment-12345"},
			errorText: "failed to get deployment",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var (
				stderr string
				err    error
			)

			if testCase.unauthenticated {
				_, stderr, err = runner.RunUnauthenticated(testCase.args...)
			} else {
				_, stderr, err = runner.Run(testCase.args...)
			}

			assert.Error(t, err, "Expected error for: %s", testCase.name)

			if testCase.errorText != "" {
				assert.Contains(t, stderr, testCase.errorText)
			}
		})
	}
}
