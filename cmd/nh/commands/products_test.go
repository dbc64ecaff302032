package commands_test

import (
	"testing"

	"github.com/nerves-hub/nerveshub-go/cmd/nh/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewProductsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewProductsCommand()
	assert.Equal(t, "products", cmd.Use)
	assert.Equal(t, []string{"product"}, cmd.Aliases)
	assert.Equal(t, "Manage products", cmd.Short)

	// Check subcommands are added
	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
}

func TestProductsGetCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewProductsCommand()
	cmd := findSubcommand(root, "get")
	assert.Equal(t, "get PRODUCT_NAME", cmd.Use)
	assert.Equal(t, "Get product details", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestProductsCreateCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewProductsCommand()
	cmd := findSubcommand(root, "create")
	assert.Equal(t, "create PRODUCT_NAME", cmd.Use)
	assert.Equal(t, "Create a new product", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestProductsDeleteCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewProductsCommand()
	cmd := findSubcommand(root, "delete")
	assert.Equal(t, "delete PRODUCT_NAME", cmd.Use)
	assert.Equal(t, "Delete a product", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}
