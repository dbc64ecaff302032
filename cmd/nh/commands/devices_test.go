package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDevicesCommand(t *testing.T) {
	cmd := NewDevicesCommand()
	assert.Equal(t, "devices", cmd.Use)
	assert.Equal(t, []string{"device"}, cmd.Aliases)
	assert.Equal(t, "Manage devices", cmd.Short)

	// Check subcommands are added
	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "certs")
}

func TestDevicesGetCommand(t *testing.T) {
	cmd := newDevicesGetCommand()
	assert.Equal(t, "get IDENTIFIER", cmd.Use)
	assert.Equal(t, "Get device details", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestDevicesCreateCommand(t *testing.T) {
	cmd := newDevicesCreateCommand()
	assert.Equal(t, "create IDENTIFIER", cmd.Use)
	assert.Equal(t, "Register a new device", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("description"))
	assert.NotNil(t, cmd.Flags().Lookup("tag"))
}

func TestDevicesUpdateCommand(t *testing.T) {
	cmd := newDevicesUpdateCommand()
	assert.Equal(t, "update IDENTIFIER", cmd.Use)
	assert.Equal(t, "Update a device", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("description"))
	assert.NotNil(t, cmd.Flags().Lookup("tag"))
}

func TestDevicesCertsCommand(t *testing.T) {
	cmd := newDevicesCertsCommand()
	assert.Equal(t, "certs", cmd.Use)
	assert.Equal(t, []string{"certificates"}, cmd.Aliases)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "create")
}

func TestDevicesCertsCreateCommand(t *testing.T) {
	cmd := newDevicesCertsCreateCommand()
	assert.Equal(t, "create IDENTIFIER CERT_FILE", cmd.Use)
	assert.Equal(t, "Register a device certificate", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}
